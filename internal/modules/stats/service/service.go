package service

import (
	"context"
	"strings"
	"time"

	"leximind-server/internal/consts"
	"leximind-server/internal/logger"
	"leximind-server/internal/model"
	"leximind-server/internal/modules/stats/dto"
	"leximind-server/internal/modules/stats/repo"
	platformservice "leximind-server/internal/platform/service"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Service struct {
	*platformservice.AppService
	store repo.LedgerStore
	keep  int
}

func New(appService *platformservice.AppService, store repo.LedgerStore) *Service {
	return &Service{
		AppService: appService,
		store:      store,
		keep:       consts.MaxLedgerEntriesPerDay,
	}
}

// Record 记录一次普通用户登录，管理员登录不计入统计。
func (s *Service) Record(ctx context.Context, email string, isAdmin bool) error {
	if isAdmin || email == "" {
		return nil
	}
	now := s.Clock()
	date := now.In(s.Location).Format(consts.DateLayout)
	if err := s.store.Record(ctx, date, email, now.UnixMilli(), s.keep); err != nil {
		return platformservice.WrapInternal("记录登录统计失败", err)
	}
	return nil
}

// RecordQuietly 记录失败只写日志，不影响登录流程。
func (s *Service) RecordQuietly(ctx context.Context, email string, isAdmin bool) {
	if err := s.Record(ctx, email, isAdmin); err != nil {
		s.Log().Warn("⚠️ 登录统计写入失败", zap.String("email", logger.MaskEmail(email)), zap.Error(err))
	}
}

// QueryRange 返回闭区间内每一天的登录总数，没有记录的日期补 0。
func (s *Service) QueryRange(ctx context.Context, start, end time.Time) ([]dto.DayCount, error) {
	dates, err := s.expandDates(start, end)
	if err != nil {
		return nil, err
	}
	days, err := s.store.DayTotals(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, platformservice.WrapInternal("查询登录统计失败", err)
	}

	totals := lo.Associate(days, func(d model.LoginDay) (string, int64) {
		return d.Date, d.Total
	})
	return lo.Map(dates, func(date string, _ int) dto.DayCount {
		return dto.DayCount{Date: date, Count: totals[date]}
	}), nil
}

// QueryUsers 返回区间内每个邮箱的登录次数，按邮箱升序。
func (s *Service) QueryUsers(ctx context.Context, start, end time.Time) ([]dto.UserCount, error) {
	dates, err := s.expandDates(start, end)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.UserTotals(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, platformservice.WrapInternal("查询用户登录统计失败", err)
	}
	if rows == nil {
		rows = []dto.UserCount{}
	}
	return rows, nil
}

// ParseRange 解析查询参数中的起止日期。
func (s *Service) ParseRange(q dto.RangeQuery) (time.Time, time.Time, error) {
	if strings.TrimSpace(q.StartDate) == "" || strings.TrimSpace(q.EndDate) == "" {
		return time.Time{}, time.Time{}, platformservice.NewValidationError("Start date and end date are required")
	}
	start, ok := s.parseDate(q.StartDate)
	if !ok {
		return time.Time{}, time.Time{}, platformservice.NewValidationError("Invalid start date")
	}
	end, ok := s.parseDate(q.EndDate)
	if !ok {
		return time.Time{}, time.Time{}, platformservice.NewValidationError("Invalid end date")
	}
	return start, end, nil
}

func (s *Service) parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(consts.DateLayout, raw, s.Location); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(s.Location), true
	}
	return time.Time{}, false
}

// expandDates 将区间展开为服务器时区下的日历日期列表。
func (s *Service) expandDates(start, end time.Time) ([]string, error) {
	from := startOfDay(start.In(s.Location))
	to := startOfDay(end.In(s.Location))
	if from.After(to) {
		return nil, platformservice.NewValidationError("Start date must not be after end date")
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if len(dates) >= consts.MaxStatsRangeDays {
			return nil, platformservice.NewValidationError("Date range is too large")
		}
		dates = append(dates, d.Format(consts.DateLayout))
	}
	return dates, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
