package controllers

import (
	"MediTrack/authorization"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) Ward(r gin.IRouter) {
	wards := r.Group("/wards")
	{
		wards.POST("", authorization.Authorize(role.Wards, role.Create), ctl.CreateWard)
		wards.GET("", authorization.Authorize(role.Wards, role.View), ctl.ListWards)
		wards.GET("/occupancy", authorization.Authorize(role.Reports, role.View), ctl.OccupancySummary)
		wards.GET("/:id", authorization.Authorize(role.Wards, role.View), ctl.GetWard)
		wards.PUT("/:id", authorization.Authorize(role.Wards, role.Update), ctl.UpdateWard)
		wards.DELETE("/:id", authorization.Authorize(role.Wards, role.Delete), ctl.DeleteWard)
	}
}

func (ctl *Controller) Bed(r gin.IRouter) {
	beds := r.Group("/beds")
	{
		beds.POST("", authorization.Authorize(role.Beds, role.Create), ctl.CreateBed)
		beds.GET("", authorization.Authorize(role.Beds, role.View), ctl.ListBeds)
		beds.GET("/:id", authorization.Authorize(role.Beds, role.View), ctl.GetBed)
		beds.PATCH("/:id", authorization.Authorize(role.Beds, role.Update), ctl.UpdateBed)
		beds.DELETE("/:id", authorization.Authorize(role.Beds, role.Delete), ctl.DeleteBed)
		beds.POST("/:id/assign", authorization.Authorize(role.Beds, role.Assign), ctl.AssignBed)
		beds.POST("/:id/discharge", authorization.Authorize(role.Beds, role.Assign), ctl.DischargeBed)
		beds.POST("/:id/maintenance", authorization.Authorize(role.Beds, role.Update), ctl.SetBedMaintenance)
	}
}

func (ctl *Controller) CreateWard(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.WardRequest
	if !ctl.bind(c, &req) {
		return
	}
	w, err := ctl.Wards.Create(c.Request.Context(), actor, req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	created(c, w)
}

func (ctl *Controller) ListWards(c *gin.Context) {
	wards, err := ctl.Wards.List(c.Request.Context())
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, wards)
}

func (ctl *Controller) GetWard(c *gin.Context) {
	w, err := ctl.Wards.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, w)
}

func (ctl *Controller) UpdateWard(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.WardRequest
	if !ctl.bind(c, &req) {
		return
	}
	w, err := ctl.Wards.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, w)
}

func (ctl *Controller) DeleteWard(c *gin.Context) {
	if err := ctl.Wards.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, "Ward deleted")
}

func (ctl *Controller) OccupancySummary(c *gin.Context) {
	sum, err := ctl.Wards.OccupancySummary(c.Request.Context())
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, sum)
}

func (ctl *Controller) CreateBed(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.BedRequest
	if !ctl.bind(c, &req) {
		return
	}
	b, err := ctl.Beds.Create(c.Request.Context(), actor, req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	created(c, b)
}

func (ctl *Controller) ListBeds(c *gin.Context) {
	var q models.BedQuery
	if !ctl.bindQuery(c, &q) {
		return
	}
	beds, err := ctl.Beds.List(c.Request.Context(), q)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, beds)
}

func (ctl *Controller) GetBed(c *gin.Context) {
	b, err := ctl.Beds.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}

func (ctl *Controller) UpdateBed(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.BedUpdate
	if !ctl.bind(c, &req) {
		return
	}
	b, err := ctl.Beds.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}

func (ctl *Controller) DeleteBed(c *gin.Context) {
	if err := ctl.Beds.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, "Bed deleted")
}

/*
* Bind the patient id
* Pass to the service, which flips the bed and bumps the ward together
 */
func (ctl *Controller) AssignBed(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.AssignBedRequest
	if !ctl.bind(c, &req) {
		return
	}
	b, err := ctl.Beds.Assign(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}

func (ctl *Controller) DischargeBed(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	b, err := ctl.Beds.Discharge(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}

func (ctl *Controller) SetBedMaintenance(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.MaintenanceRequest
	if !ctl.bind(c, &req) {
		return
	}
	b, err := ctl.Beds.SetMaintenance(c.Request.Context(), actor, c.Param("id"), req.On)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}
