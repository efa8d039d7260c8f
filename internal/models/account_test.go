package models

import "testing"

func TestAccountBalanceAfter(t *testing.T) {
	cases := []struct {
		name     string
		typ      AccountType
		outgoing bool
		want     float64
	}{
		{"bank withdrawal", AccountBank, true, 700},
		{"bank deposit", AccountBank, false, 1300},
		{"card purchase increases debt", AccountCreditCard, true, 1300},
		{"card payment reduces debt", AccountCreditCard, false, 700},
		{"wallet top-up", AccountWallet, false, 1300},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Account{Type: tc.typ, Balance: 1000}
			if got := a.BalanceAfter(300, tc.outgoing); got != tc.want {
				t.Errorf("BalanceAfter = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestAccountDisplayName(t *testing.T) {
	if got := (Account{Name: "Visa Oro", BankName: "BI"}).DisplayName(); got != "Visa Oro (BI)" {
		t.Errorf("unexpected display name %q", got)
	}
	if got := (Account{Name: "Caja chica"}).DisplayName(); got != "Caja chica" {
		t.Errorf("unexpected display name %q", got)
	}
}
