package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"salonledger/api"
	"salonledger/config"
	"salonledger/database"
	"salonledger/logger"
	"salonledger/middleware"
	"salonledger/router"
	"salonledger/service"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// @title 살롱 장부 API
// @version 1.0
// @description 미용실 지점 통장 거래 업로드, 분류, 리포트, 손익분기와 재무 건강도 분석 API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "외부 설정 파일 경로 (선택)")
	flag.StringVar(&configFile, "c", "", "외부 설정 파일 경로 (축약)")
	flag.StringVar(&port, "port", "", "수신 포트, 예: 8080 또는 :8080")
	flag.StringVar(&port, "p", "", "수신 포트 (축약)")
	flag.BoolVar(&showVersion, "version", false, "버전 출력")
	flag.BoolVar(&showVersion, "v", false, "버전 출력 (축약)")
}

func main() {
	flag.Parse()

	if showVersion {
		os.Stdout.WriteString("salonledger v" + version + "\n")
		return
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("설정 로드 실패")
	}

	base := logger.New(cfg.Log)
	log.Logger = base

	// 명령행 포트가 설정보다 우선
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Info().Str("port", port).Msg("명령행 지정 포트")
	}
	cfg.PrintConfig()

	// 금액은 JSON 숫자로 내보낸다
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("데이터베이스 초기화 실패")
	}

	narrator, err := service.NewNarrator(cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("분석 문장 생성기 설정 오류")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := &api.Deps{
		Config:   cfg,
		DB:       db,
		JWT:      middleware.NewJWTManager(cfg.JWT),
		Narrator: narrator,
		Email:    service.NewEmailService(&cfg.Email),
	}
	limiter := middleware.NewAttemptLimiter(ctx, cfg.Server.LoginMaxAttempts, cfg.Server.LoginWindow())
	r := router.SetupRouter(deps, base, limiter)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("swagger", "http://localhost"+cfg.Server.Port+"/swagger/index.html").
			Str("api", "http://localhost"+cfg.Server.Port+"/api/v1/").
			Msg("살롱 장부 서버 시작")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("서버 시작 실패")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("서버 종료 중")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("서버 종료 실패")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
