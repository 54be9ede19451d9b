package controllers

import (
	"MediTrack/authorization"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) FollowUp(r gin.IRouter) {
	followUps := r.Group("/followups")
	{
		followUps.POST("", authorization.Authorize(role.FollowUps, role.Create), ctl.CreateFollowUp)
		followUps.GET("", authorization.Authorize(role.FollowUps, role.View), ctl.ListFollowUps)
		followUps.GET("/:id", authorization.Authorize(role.FollowUps, role.View), ctl.GetFollowUp)
		followUps.PATCH("/:id", authorization.Authorize(role.FollowUps, role.Update), ctl.UpdateFollowUp)
		followUps.POST("/:id/notified", authorization.Authorize(role.FollowUps, role.Update), ctl.MarkFollowUpNotified)
		followUps.DELETE("/:id", authorization.Authorize(role.FollowUps, role.Delete), ctl.DeleteFollowUp)
	}
}

func (ctl *Controller) CreateFollowUp(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.FollowUpRequest
	if !ctl.bind(c, &req) {
		return
	}
	f, err := ctl.FollowUps.Create(c.Request.Context(), actor, req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	created(c, f)
}

func (ctl *Controller) ListFollowUps(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var q models.FollowUpQuery
	if !ctl.bindQuery(c, &q) {
		return
	}
	list, err := ctl.FollowUps.List(c.Request.Context(), actor, q)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, list)
}

func (ctl *Controller) GetFollowUp(c *gin.Context) {
	f, err := ctl.FollowUps.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, f)
}

func (ctl *Controller) UpdateFollowUp(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.FollowUpUpdate
	if !ctl.bind(c, &req) {
		return
	}
	f, err := ctl.FollowUps.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, f)
}

func (ctl *Controller) MarkFollowUpNotified(c *gin.Context) {
	f, err := ctl.FollowUps.MarkNotified(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, f)
}

func (ctl *Controller) DeleteFollowUp(c *gin.Context) {
	if err := ctl.FollowUps.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, "Follow-up deleted")
}
