package controllers

import (
	"MediTrack/authorization"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) Prescription(r gin.IRouter) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", authorization.Authorize(role.Prescriptions, role.Create), ctl.CreatePrescription)
		prescriptions.GET("/:id", authorization.Authorize(role.Prescriptions, role.View), ctl.GetPrescription)
		prescriptions.PATCH("/:id", authorization.Authorize(role.Prescriptions, role.Update), ctl.UpdatePrescription)
		prescriptions.DELETE("/:id", authorization.Authorize(role.Prescriptions, role.Delete), ctl.DeletePrescription)
		prescriptions.GET("/:id/pdf", authorization.Authorize(role.Prescriptions, role.View), ctl.PrescriptionPDF)
	}
}

func (ctl *Controller) CreatePrescription(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.PrescriptionRequest
	if !ctl.bind(c, &req) {
		return
	}
	p, err := ctl.Prescriptions.Create(c.Request.Context(), actor, req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	created(c, p)
}

func (ctl *Controller) GetPrescription(c *gin.Context) {
	p, err := ctl.Prescriptions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, p)
}

func (ctl *Controller) GetAppointmentPrescription(c *gin.Context) {
	p, err := ctl.Prescriptions.GetByAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, p)
}

func (ctl *Controller) ListPatientPrescriptions(c *gin.Context) {
	list, err := ctl.Prescriptions.ListByPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, list)
}

func (ctl *Controller) UpdatePrescription(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.PrescriptionUpdate
	if !ctl.bind(c, &req) {
		return
	}
	p, err := ctl.Prescriptions.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, p)
}

func (ctl *Controller) DeletePrescription(c *gin.Context) {
	if err := ctl.Prescriptions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, "Prescription deleted")
}

func (ctl *Controller) PrescriptionPDF(c *gin.Context) {
	doc, err := ctl.Reports.PrescriptionPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	sendPDF(c, doc)
}
