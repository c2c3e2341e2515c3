package router

import (
	"salonledger/api"
	_ "salonledger/docs"
	"salonledger/logger"
	"salonledger/middleware"
	"salonledger/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 라우터 구성. limiter 는 로그인 경로에만 적용된다.
func SetupRouter(deps *api.Deps, base zerolog.Logger, limiter *middleware.AttemptLimiter) *gin.Engine {
	gin.SetMode(deps.Config.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(base))
	r.Use(middleware.CORS(deps.Config.Server.CORSOrigins))

	// Swagger 문서
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		authHandler := api.NewAuthHandler(deps)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			login := []gin.HandlerFunc{authHandler.Login}
			if limiter != nil {
				login = append([]gin.HandlerFunc{limiter.Middleware()}, login...)
			}
			auth.POST("/login", login...)
		}

		authorized := v1.Group("")
		authorized.Use(deps.JWT.JWTAuth())
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)

			// 업로드
			uploadHandler := api.NewUploadHandler(deps)
			authorized.POST("/upload", uploadHandler.Upload)
			authorized.GET("/uploads", uploadHandler.ListUploads)
			authorized.DELETE("/uploads/:id", uploadHandler.DeleteUpload)

			// 분류 규칙
			ruleHandler := api.NewRuleHandler(deps)
			rules := authorized.Group("/rules")
			{
				rules.GET("", ruleHandler.ListRules)
				rules.POST("", ruleHandler.CreateRule)
				rules.PUT("/:id", ruleHandler.UpdateRule)
				rules.DELETE("/:id", ruleHandler.DeleteRule)
			}

			// 거래
			txHandler := api.NewTransactionHandler(deps)
			salaryHandler := api.NewSalaryHandler(deps)
			tx := authorized.Group("/transactions")
			{
				tx.GET("/manage", txHandler.ListTransactions)
				tx.POST("/assign", txHandler.Assign)
				tx.POST("/mark_fixed", txHandler.MarkFixed)
				tx.POST("/summary", txHandler.Summary)
				tx.POST("/latest-balance", txHandler.LatestBalance)
				tx.POST("/income-filtered", txHandler.IncomeFiltered)

				tx.POST("/salary_manual_save", salaryHandler.SaveManual)
				tx.POST("/salary_manual_delete", salaryHandler.DeleteManual)
				tx.GET("/salary_auto_load", salaryHandler.AutoLoad)
			}
			authorized.GET("/designer_salaries", salaryHandler.ListSalaries)

			// 리포트
			reportHandler := api.NewReportHandler(deps)
			reports := authorized.Group("/reports")
			{
				reports.POST("", reportHandler.GenerateReport)
				reports.POST("/export", reportHandler.ExportReport)
				reports.POST("/email", reportHandler.EmailReport)
			}

			// 자산 기록
			assetHandler := api.NewAssetHandler(deps)
			assets := authorized.Group("/assets_log")
			{
				assets.GET("", assetHandler.ListAssets)
				assets.GET("/liquid", assetHandler.ListLiquid)
				assets.POST("", assetHandler.CreateAsset)
				assets.DELETE("/:id", assetHandler.DeleteAsset)
			}

			// 지점, 카테고리, 직원 명단
			metaHandler := api.NewMetaHandler(deps)
			meta := authorized.Group("/meta")
			{
				meta.GET("/branches", metaHandler.ListBranches)
				meta.POST("/branches", metaHandler.CreateBranch)
				meta.GET("/category-suggestions", metaHandler.CategorySuggestions)
				meta.GET("/designers", metaHandler.ListDesigners)
				meta.POST("/designers", metaHandler.SaveDesigners)
			}

			salonHandler := api.NewSalonHandler(deps)
			authorized.GET("/salon/monthly-data", salonHandler.ListMonthlyData)
			authorized.POST("/salon/monthly-data", salonHandler.SaveMonthlyData)

			// 분석
			analysisHandler := api.NewAnalysisHandler(deps)
			analyses := authorized.Group("/analyses")
			{
				analyses.POST("/break-even", analysisHandler.BreakEven)
				analyses.POST("/health", analysisHandler.Health)
				analyses.GET("", analysisHandler.ListAnalyses)
				analyses.GET("/:id", analysisHandler.GetAnalysis)
				analyses.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), analysisHandler.DeleteAnalysis)
			}
		}
	}

	// 헬스 체크
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}
