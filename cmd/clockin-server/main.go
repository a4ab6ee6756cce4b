package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/clock-in-out/server/internal/config"
	"github.com/clock-in-out/server/internal/db"
	"github.com/clock-in-out/server/internal/httpapi"
	"github.com/clock-in-out/server/internal/notify"
	"github.com/clock-in-out/server/internal/timeclock/service"
	"github.com/clock-in-out/server/internal/timeclock/store"
	redisstore "github.com/clock-in-out/server/internal/timeclock/store/redis"
	sqlitestore "github.com/clock-in-out/server/internal/timeclock/store/sqlite"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "clockin-server ", log.LstdFlags|log.LUTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer conn.Close()

	writer := db.NewWorker(conn)
	defer writer.Close()

	if cfg.IsDev() {
		if err := db.SeedDev(ctx, conn); err != nil {
			logger.Fatalf("seed dev data: %v", err)
		}
		logger.Printf("dev roster seeded")
	}

	// Stores
	personStore := sqlitestore.NewPersonStore(conn, writer)
	scheduleStore := sqlitestore.NewScheduleStore(conn, writer)
	attendanceStore := sqlitestore.NewAttendanceStore(conn, writer)

	var otpStore store.OtpStore = sqlitestore.NewOtpStore(conn, writer)
	if cfg.RedisURL != "" {
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatalf("parse redis url: %v", err)
		}
		client := goredis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("redis ping: %v", err)
		}
		defer client.Close()
		otpStore = redisstore.NewOtpStore(client)
		logger.Printf("otp store backed by redis")
	}

	// Notifier: SMTP when a relay is configured, log-only otherwise.
	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.SMTPAddr != "" {
		notifier = notify.NewSMTPNotifier(cfg.SMTPAddr, cfg.SMTPFrom, logger)
	}

	scheduleCfg, err := service.ParseScheduleConfig(
		cfg.ShiftOffsetHours, cfg.SundayWrap,
		cfg.MorningWindow, cfg.NightWindow,
		cfg.HourSlots, cfg.ExcludedRooms,
	)
	if err != nil {
		logger.Fatalf("schedule config: %v", err)
	}

	// Services
	clock := service.SystemClock{}
	otpSvc := service.NewOtpService(personStore, otpStore, notifier, clock, service.OtpConfig{
		TTL:         time.Duration(cfg.OTPTTLMinutes) * time.Minute,
		RevealCodes: cfg.IsDev(),
	}, logger)
	authSvc := service.NewAuthService(personStore, attendanceStore, otpSvc, clock)
	rosterSvc := service.NewRosterService(scheduleStore, attendanceStore, clock, scheduleCfg)
	personSvc := service.NewPersonService(personStore)

	pruner := service.NewOtpPruner(otpStore, clock, service.PrunerConfig{
		RetentionDays: cfg.OTPRetentionDays,
		IntervalHours: cfg.PruneIntervalHours,
	}, logger)
	pruner.Start(ctx)
	defer pruner.Stop()

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:        logger,
		Addr:          cfg.HTTPAddr,
		AuthService:   authSvc,
		OtpService:    otpSvc,
		RosterService: rosterSvc,
		PersonService: personSvc,
	})

	go func() {
		logger.Printf("listening on %s (env=%s)", cfg.HTTPAddr, cfg.Env)
		if err := srv.Start(); err != nil {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
