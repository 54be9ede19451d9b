package controllers

import (
	"MediTrack/authorization"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) Appointment(r gin.IRouter) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", authorization.Authorize(role.Appointments, role.Create), ctl.BookAppointment)
		appointments.GET("", authorization.Authorize(role.Appointments, role.View), ctl.ListAppointments)
		appointments.GET("/:id", authorization.Authorize(role.Appointments, role.View), ctl.GetAppointment)
		appointments.PATCH("/:id", authorization.Authorize(role.Appointments, role.Update), ctl.UpdateAppointment)
		appointments.POST("/:id/cancel", authorization.Authorize(role.Appointments, role.Update), ctl.CancelAppointment)
		appointments.GET("/:id/prescription", authorization.Authorize(role.Prescriptions, role.View), ctl.GetAppointmentPrescription)
	}
}

/*
* Bind the booking fields
* Pass to the service; a taken slot comes back as 409
 */
func (ctl *Controller) BookAppointment(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.BookingRequest
	if !ctl.bind(c, &req) {
		return
	}
	appt, err := ctl.Appointments.Book(c.Request.Context(), actor, req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	created(c, appt)
}

func (ctl *Controller) ListAppointments(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var q models.AppointmentQuery
	if !ctl.bindQuery(c, &q) {
		return
	}
	appts, err := ctl.Appointments.List(c.Request.Context(), actor, q)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, appts)
}

func (ctl *Controller) GetAppointment(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	appt, err := ctl.Appointments.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, appt)
}

func (ctl *Controller) UpdateAppointment(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.AppointmentUpdate
	if !ctl.bind(c, &req) {
		return
	}
	appt, err := ctl.Appointments.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, appt)
}

func (ctl *Controller) CancelAppointment(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	appt, err := ctl.Appointments.Cancel(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, appt)
}
