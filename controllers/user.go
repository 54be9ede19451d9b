package controllers

import (
	"MediTrack/authorization"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) User(r gin.IRouter) {
	users := r.Group("/users")
	{
		users.POST("", authorization.Authorize(role.Users, role.Create), ctl.CreateUser)
		users.GET("", authorization.Authorize(role.Users, role.View), ctl.ListUsers)
		users.GET("/:id", authorization.Authorize(role.Users, role.View), ctl.GetUser)
		users.PATCH("/:id", authorization.Authorize(role.Users, role.Update), ctl.UpdateUser)
		users.DELETE("/:id", authorization.Authorize(role.Users, role.Delete), ctl.DeactivateUser)
	}
	r.GET("/roles", ctl.Roles)
}

func (ctl *Controller) Doctor(r gin.IRouter) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", authorization.Authorize(role.Doctors, role.View), ctl.ListDoctors)
		doctors.GET("/:id/slots", authorization.Authorize(role.Slots, role.View), ctl.AvailableSlots)
	}
}

/*
* Bind the user fields
* Pass to the service, which hashes the password
 */
func (ctl *Controller) CreateUser(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.CreateUserRequest
	if !ctl.bind(c, &req) {
		return
	}
	u, err := ctl.Users.Create(c.Request.Context(), actor, req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	created(c, u)
}

func (ctl *Controller) ListUsers(c *gin.Context) {
	users, err := ctl.Users.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, users)
}

func (ctl *Controller) GetUser(c *gin.Context) {
	u, err := ctl.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, u)
}

func (ctl *Controller) UpdateUser(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.UpdateUserRequest
	if !ctl.bind(c, &req) {
		return
	}
	u, err := ctl.Users.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, u)
}

func (ctl *Controller) DeactivateUser(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	if err := ctl.Users.Deactivate(c.Request.Context(), actor, c.Param("id")); err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, "User deactivated")
}

func (ctl *Controller) ListDoctors(c *gin.Context) {
	doctors, err := ctl.Users.ListDoctors(c.Request.Context())
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, doctors)
}

// AvailableSlots answers GET /doctors/:id/slots?date=YYYY-MM-DD.
func (ctl *Controller) AvailableSlots(c *gin.Context) {
	slots, err := ctl.Appointments.AvailableSlots(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, slots)
}
