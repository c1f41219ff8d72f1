package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/warung-pos/models"
	"gorm.io/gorm"
)

// BusinessDayService menghitung tanggal usaha dan menyimpan status tutup hari.
// Sebelum CutoffHour, jam dinding masih dihitung sebagai hari usaha sebelumnya.
type BusinessDayService struct {
	DB         *gorm.DB
	CutoffHour int
	Location   *time.Location
}

func NewBusinessDayService(db *gorm.DB, cutoffHour int, loc *time.Location) *BusinessDayService {
	if loc == nil {
		loc = time.Local
	}
	if cutoffHour < 0 || cutoffHour > 23 {
		cutoffHour = 0
	}
	return &BusinessDayService{DB: db, CutoffHour: cutoffHour, Location: loc}
}

// BusinessDate -> tanggal usaha (YYYY-MM-DD) untuk waktu now
func (s *BusinessDayService) BusinessDate(now time.Time) string {
	local := now.In(s.Location)
	if local.Hour() < s.CutoffHour {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(models.DateLayout)
}

func (s *BusinessDayService) IsClosed(ctx context.Context, date string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.ClosedDay{}).
		Where("business_date = ?", date).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check closed day %s: %w", date, err)
	}
	return count > 0, nil
}

// State -> DayState untuk waktu now
func (s *BusinessDayService) State(ctx context.Context, now time.Time) (DayState, error) {
	date := s.BusinessDate(now)
	locked, err := s.IsClosed(ctx, date)
	if err != nil {
		return DayState{}, err
	}
	return DayState{Date: date, Locked: locked, Location: s.Location}, nil
}

// CloseDay mengunci tanggal usaha. Mengunci dua kali menghasilkan ErrDayAlreadyClosed.
func (s *BusinessDayService) CloseDay(ctx context.Context, date, closedBy string, report DayReport, now time.Time) (models.ClosedDay, error) {
	closed, err := s.IsClosed(ctx, date)
	if err != nil {
		return models.ClosedDay{}, err
	}
	if closed {
		return models.ClosedDay{}, ErrDayAlreadyClosed
	}

	day := models.ClosedDay{
		BusinessDate: date,
		ClosedBy:     closedBy,
		OrderCount:   report.OrderCount,
		Revenue:      report.Revenue,
		ClosedAt:     now,
	}
	if err := s.DB.WithContext(ctx).Create(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ClosedDay{}, ErrDayAlreadyClosed
		}
		return models.ClosedDay{}, fmt.Errorf("close day %s: %w", date, err)
	}
	return day, nil
}

func (s *BusinessDayService) ClosedDays(ctx context.Context) ([]models.ClosedDay, error) {
	var days []models.ClosedDay
	if err := s.DB.WithContext(ctx).Order("business_date desc").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}
