package controllers

import (
	"MediTrack/models"
	"MediTrack/role"

	"github.com/gin-gonic/gin"
)

// AuthPublic registers the routes reachable without a token.
func (ctl *Controller) AuthPublic(r gin.IRouter) {
	r.POST("/auth/login", ctl.Login)
}

func (ctl *Controller) AuthPrivate(r gin.IRouter) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", ctl.Me)
		auth.POST("/change-password", ctl.ChangePassword)
	}
}

/*
* Bind email and password
* Pass to the service, which counts failures
 */
func (ctl *Controller) Login(c *gin.Context) {
	var req models.LoginRequest
	if !ctl.bind(c, &req) {
		return
	}
	res, err := ctl.Auth.Login(c.Request.Context(), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, res)
}

func (ctl *Controller) Me(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	me, err := ctl.Auth.Me(c.Request.Context(), actor)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, me)
}

func (ctl *Controller) ChangePassword(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.ChangePasswordRequest
	if !ctl.bind(c, &req) {
		return
	}
	if err := ctl.Auth.ChangePassword(c.Request.Context(), actor, req); err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, "Password updated successfully")
}

// Roles lists what each role may do.
func (ctl *Controller) Roles(c *gin.Context) {
	out := map[role.Role][]string{}
	for _, r := range role.All() {
		out[r] = role.Privileges(r)
	}
	ok(c, out)
}
