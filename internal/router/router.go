// Package router wires the HTTP routes to their handlers.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/homehero/homehero/internal/auth"
	"github.com/homehero/homehero/internal/handler"
	"github.com/homehero/homehero/internal/middleware"
)

// Handlers bundles the handler set the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Household *handler.HouseholdHandler
	Chore     *handler.ChoreHandler
	Expense   *handler.ExpenseHandler
	Grocery   *handler.GroceryHandler
	Schedule  *handler.ScheduleHandler
}

// New builds the gin engine with all routes mounted. Everything under
// /api/v1 except the auth endpoints requires a Bearer token.
func New(h Handlers, jwtManager *auth.JWTManager) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")

	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)

	authed := v1.Group("", middleware.RequireAuth(jwtManager))

	authed.GET("/profiles/me", h.Profile.Me)
	authed.GET("/profiles/search", h.Profile.Search)

	authed.GET("/schedule", h.Schedule.Get)
	authed.PUT("/schedule", h.Schedule.Put)

	authed.POST("/households", h.Household.Create)
	authed.GET("/households", h.Household.List)
	authed.POST("/households/join", h.Household.Join)
	authed.GET("/households/:householdId", h.Household.Get)
	authed.GET("/households/:householdId/members", h.Household.Members)
	authed.DELETE("/households/:householdId/members/me", h.Household.Leave)
	authed.POST("/households/:householdId/invites", h.Household.Invite)

	authed.GET("/invites", h.Household.Invites)
	authed.POST("/invites/:inviteId/accept", h.Household.AcceptInvite)
	authed.POST("/invites/:inviteId/decline", h.Household.DeclineInvite)

	authed.POST("/households/:householdId/chores", h.Chore.Create)
	authed.GET("/households/:householdId/chores", h.Chore.List)
	authed.POST("/households/:householdId/chores/:choreId/complete", h.Chore.Complete)

	authed.POST("/households/:householdId/expenses", h.Expense.Create)
	authed.GET("/households/:householdId/expenses", h.Expense.List)
	authed.GET("/households/:householdId/expenses/monthly-total", h.Expense.MonthlyTotal)
	authed.GET("/households/:householdId/splits", h.Expense.MySplits)
	authed.GET("/expenses/:expenseId", h.Expense.Get)
	authed.PUT("/expenses/:expenseId", h.Expense.Update)
	authed.DELETE("/expenses/:expenseId", h.Expense.Remove)
	authed.POST("/splits/:splitId/pay", h.Expense.PaySplit)
	authed.POST("/splits/:splitId/unpay", h.Expense.UnpaySplit)

	authed.POST("/households/:householdId/groceries", h.Grocery.Add)
	authed.GET("/households/:householdId/groceries", h.Grocery.List)
	authed.PUT("/groceries/:groceryId", h.Grocery.Update)
	authed.DELETE("/groceries/:groceryId", h.Grocery.Remove)

	return engine
}
