package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/alerts"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

// alertWindow is how long an alert, dismissed or not, suppresses a new one
// of the same type for the same account
const alertWindow = 24 * time.Hour

// GenerateAlerts evaluates the accounts and stores the alerts not already
// raised in the last 24 hours. Payment reminders are also sent through the
// notifier.
func (s *Service) GenerateAlerts(ctx context.Context, userID int64) ([]models.Alert, error) {
	accounts, err := s.repo.ListActiveAccounts(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	conv, err := s.converter(ctx)
	if err != nil {
		return nil, err
	}
	settings.DisplayCurrency = conv.display

	now := s.now()
	recent, err := s.repo.ListAlertsSince(ctx, userID, now.Add(-alertWindow))
	if err != nil {
		return nil, err
	}

	created := make([]models.Alert, 0)
	for _, candidate := range alerts.Evaluate(conv.convertAccounts(accounts), settings, now) {
		if raisedRecently(recent, candidate) {
			continue
		}
		candidate.UserID = userID
		if err := s.repo.CreateAlert(ctx, &candidate); err != nil {
			return created, fmt.Errorf("failed to store %s alert: %w", candidate.Type, err)
		}
		created = append(created, candidate)

		if candidate.Type == models.AlertPaymentDue && s.notifier != nil {
			if err := s.notifier.Notify(ctx, candidate); err != nil {
				s.log.WithFields(logrus.Fields{
					"module":   "service",
					"funcName": "GenerateAlerts",
					"alert_id": candidate.ID,
				}).Error(err.Error())
			}
		}
	}

	if len(created) > 0 {
		s.log.Infof("Created %d alert(s) for user %d", len(created), userID)
	}
	return created, nil
}

func raisedRecently(recent []models.Alert, candidate models.Alert) bool {
	for _, a := range recent {
		if a.Type != candidate.Type {
			continue
		}
		if candidate.AccountID == nil {
			return true
		}
		if a.AccountID != nil && *a.AccountID == *candidate.AccountID {
			return true
		}
	}
	return false
}

// ListAlerts returns the user's alerts that were not dismissed
func (s *Service) ListAlerts(ctx context.Context, userID int64) ([]models.Alert, error) {
	return s.repo.ListActiveAlerts(ctx, userID)
}

// CountAlerts returns how many alerts the user has not dismissed
func (s *Service) CountAlerts(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountActiveAlerts(ctx, userID)
}

// DismissAlert hides one of the user's alerts
func (s *Service) DismissAlert(ctx context.Context, userID, alertID int64) error {
	return s.repo.DismissAlert(ctx, userID, alertID)
}

// RunDailyJobs refreshes the exchange rate and generates alerts for every
// user. Failures are logged and do not stop the remaining work.
func (s *Service) RunDailyJobs(ctx context.Context) {
	if err := s.RefreshExchangeRate(ctx); err != nil {
		s.log.WithField("job", "exchange_rate").Error(err.Error())
	}

	userIDs, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		s.log.WithField("job", "alerts").Error(err.Error())
		return
	}
	for _, id := range userIDs {
		if _, err := s.GenerateAlerts(ctx, id); err != nil {
			s.log.WithFields(logrus.Fields{"job": "alerts", "user_id": id}).Error(err.Error())
		}
	}
}
