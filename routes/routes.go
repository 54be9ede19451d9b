package routes

import (
	"net/http"

	"MediTrack/authorization"
	"MediTrack/controllers"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine, ctl *controllers.Controller, iss *authorization.Issuer) {

	//public
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ctl.AuthPublic(r)

	//private routes
	private := r.Group("")
	private.Use(authorization.JWTAuth(iss))
	ctl.AuthPrivate(private)
	ctl.User(private)
	ctl.Doctor(private)
	ctl.Patient(private)
	ctl.Appointment(private)
	ctl.Prescription(private)
	ctl.FollowUp(private)
	ctl.Ward(private)
	ctl.Bed(private)
	ctl.Bill(private)
}
