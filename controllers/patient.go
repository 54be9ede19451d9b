package controllers

import (
	"MediTrack/authorization"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) Patient(r gin.IRouter) {
	patients := r.Group("/patients")
	{
		patients.POST("", authorization.Authorize(role.Patients, role.Create), ctl.CreatePatient)
		patients.GET("", authorization.Authorize(role.Patients, role.View), ctl.ListPatients)
		patients.GET("/:id", authorization.Authorize(role.Patients, role.View), ctl.GetPatient)
		patients.PUT("/:id", authorization.Authorize(role.Patients, role.Update), ctl.UpdatePatient)
		patients.DELETE("/:id", authorization.Authorize(role.Patients, role.Delete), ctl.DeletePatient)
		patients.GET("/:id/prescriptions", authorization.Authorize(role.Prescriptions, role.View), ctl.ListPatientPrescriptions)
		patients.GET("/:id/summary", authorization.Authorize(role.Reports, role.View), ctl.PatientSummary)
		patients.GET("/:id/summary/pdf", authorization.Authorize(role.Reports, role.View), ctl.PatientSummaryPDF)
	}
}

func (ctl *Controller) CreatePatient(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.PatientRequest
	if !ctl.bind(c, &req) {
		return
	}
	p, err := ctl.Patients.Create(c.Request.Context(), actor, req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	created(c, p)
}

// ListPatients takes an optional ?search= matched against name and phone.
func (ctl *Controller) ListPatients(c *gin.Context) {
	patients, err := ctl.Patients.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, patients)
}

func (ctl *Controller) GetPatient(c *gin.Context) {
	p, err := ctl.Patients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, p)
}

func (ctl *Controller) UpdatePatient(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.PatientRequest
	if !ctl.bind(c, &req) {
		return
	}
	p, err := ctl.Patients.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, p)
}

func (ctl *Controller) DeletePatient(c *gin.Context) {
	if err := ctl.Patients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, "Patient deleted")
}

func (ctl *Controller) PatientSummary(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	summary, err := ctl.Reports.PatientSummary(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, summary)
}

func (ctl *Controller) PatientSummaryPDF(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	doc, err := ctl.Reports.PatientSummaryPDF(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	sendPDF(c, doc)
}
