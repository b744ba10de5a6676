package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nutritrack-backend/controllers"
	"nutritrack-backend/middlewares"
	"nutritrack-backend/monitoring"
	"nutritrack-backend/services"
	"nutritrack-backend/utils"
)

// Controllers bundles every handler group the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Users      *controllers.UserController
	Consultant *controllers.ConsultantController
	Goals      *controllers.GoalController
	Notes      *controllers.NoteController
	Tracking   *controllers.TrackingController
	Admin      *controllers.AdminController
}

func SetupRouter(ctrl Controllers, verifier utils.TokenVerifier, db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.PrometheusMetrics())
	r.Use(middlewares.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	auth := r.Group("/api/auth")
	{
		auth.POST("/user/register", ctrl.Auth.RegisterUser)
		auth.POST("/user/login", ctrl.Auth.LoginUser)
		auth.POST("/consultant/register", ctrl.Auth.RegisterConsultant)
		auth.POST("/consultant/login", ctrl.Auth.LoginConsultant)
		auth.POST("/admin/register", ctrl.Auth.RegisterAdmin)
		auth.POST("/admin/login", ctrl.Auth.LoginAdmin)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(verifier))

	users := api.Group("/users")
	{
		users.GET("/me", ctrl.Users.GetMe)
		users.GET("", ctrl.Users.ListUsers)
		users.GET("/:userUid", ctrl.Users.GetUser)

		me := users.Group("/me", middlewares.RequireRole(services.RoleUser))
		me.PATCH("/nickname", ctrl.Users.UpdateNickname)
		me.PATCH("/description", ctrl.Users.UpdateProfileDescription)
		me.PATCH("/picture", ctrl.Users.UpdateProfilePicture)
		me.PATCH("/profile", ctrl.Users.UpdateProfile)
		me.PATCH("/weight", ctrl.Users.UpdateCurrentWeight)
	}

	consultants := api.Group("/consultants")
	{
		consultants.GET("", ctrl.Consultant.ListConsultants)
		consultants.GET("/:consultantUid", ctrl.Consultant.GetConsultant)

		me := consultants.Group("/me", middlewares.RequireRole(services.RoleConsultant))
		me.PATCH("/nickname", ctrl.Consultant.UpdateNickname)
		me.PATCH("/description", ctrl.Consultant.UpdateProfileDescription)
		me.PATCH("/picture", ctrl.Consultant.UpdateProfilePicture)
		me.PATCH("/max-clients", ctrl.Consultant.UpdateMaxClients)
		me.PATCH("/experience", ctrl.Consultant.UpdateExperienceYears)
	}

	consultation := api.Group("/consultation")
	{
		consultation.GET("/relationships", ctrl.Consultant.ListMyRelationships)
		consultation.GET("/invites", ctrl.Consultant.ListMyInvites)

		asConsultant := consultation.Group("", middlewares.RequireRole(services.RoleConsultant))
		asConsultant.POST("/invite-user", ctrl.Consultant.InviteUser)
		asConsultant.POST("/respond", ctrl.Consultant.RespondAsConsultant)
		asConsultant.POST("/dissolve-by-consultant", ctrl.Consultant.DissolveAsConsultant)

		asUser := consultation.Group("", middlewares.RequireRole(services.RoleUser))
		asUser.POST("/invite-consultant", ctrl.Consultant.InviteConsultant)
		asUser.POST("/respond-as-user", ctrl.Consultant.RespondAsUser)
		asUser.POST("/dissolve", ctrl.Consultant.DissolveAsUser)
	}

	goals := api.Group("/goals")
	{
		goals.GET("/:goalId", ctrl.Goals.GetGoal)
		goals.GET("/:goalId/notes", ctrl.Notes.ListNotesForGoal)
		goals.GET("/by-user/:userUid", ctrl.Goals.GetGoalIDByUserUID)

		asUser := goals.Group("", middlewares.RequireRole(services.RoleUser))
		asUser.POST("", ctrl.Goals.CreateGoal)
		asUser.GET("", ctrl.Goals.GetUserGoalIDs)
		asUser.PATCH("/target-weight", ctrl.Goals.UpdateGoalWeight)
		asUser.DELETE("/:goalId", ctrl.Goals.DeleteGoal)

		asConsultant := goals.Group("", middlewares.RequireRole(services.RoleConsultant))
		asConsultant.POST("/approve", ctrl.Goals.ApproveGoal)
	}

	notes := api.Group("/notes", middlewares.RequireRole(services.RoleConsultant))
	{
		notes.POST("", ctrl.Notes.AddNote)
		notes.PATCH("/:noteId", ctrl.Notes.UpdateNote)
		notes.DELETE("/:noteId", ctrl.Notes.DeleteNote)
	}

	tracking := api.Group("/tracking", middlewares.RequireRole(services.RoleUser))
	{
		tracking.POST("/weight", ctrl.Tracking.AddWeightMeasurement)
		tracking.GET("/weight", ctrl.Tracking.ListWeightMeasurements)

		tracking.POST("/water", ctrl.Tracking.AddWater)
		tracking.GET("/water", ctrl.Tracking.ListWater)
		tracking.PATCH("/water/:intakeId", ctrl.Tracking.UpdateWater)
		tracking.DELETE("/water/:intakeId", ctrl.Tracking.DeleteWater)

		tracking.POST("/exercise", ctrl.Tracking.AddExercise)
		tracking.GET("/exercise", ctrl.Tracking.ListExercises)
		tracking.PATCH("/exercise/:exerciseId", ctrl.Tracking.UpdateExercise)
		tracking.DELETE("/exercise/:exerciseId", ctrl.Tracking.DeleteExercise)

		tracking.POST("/meals", ctrl.Tracking.AddMealEntry)
		tracking.GET("/meals", ctrl.Tracking.ListMealEntries)
		tracking.DELETE("/meals/:entryId", ctrl.Tracking.DeleteMealEntry)

		tracking.POST("/streaks", ctrl.Tracking.AddStreak)
		tracking.GET("/streaks", ctrl.Tracking.ListStreaks)
		tracking.PATCH("/streaks/:streakId", ctrl.Tracking.UpdateStreak)
		tracking.PATCH("/streaks/:streakId/disable", ctrl.Tracking.DisableStreak)
	}

	admin := api.Group("/admin", middlewares.RequireRole(services.RoleAdmin))
	{
		admin.GET("/statistics", ctrl.Admin.GetStatistics)
		admin.GET("/users/by-nickname/:nickname", ctrl.Admin.FindUserByNickname)
		admin.GET("/consultants/by-nickname/:nickname", ctrl.Admin.FindConsultantByNickname)
		admin.DELETE("/users/:userUid", ctrl.Admin.RemoveUserAccount)
		admin.DELETE("/consultants/:consultantUid", ctrl.Admin.RemoveConsultantAccount)
	}

	return r
}
