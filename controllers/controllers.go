package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"MediTrack/apperror"
	"MediTrack/authorization"
	"MediTrack/role"
	"MediTrack/services"

	util "github.com/KanapuramVaishnavi/Core/util"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Controller holds the services the HTTP handlers call into.
type Controller struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Patients      *services.PatientService
	Appointments  *services.AppointmentService
	Prescriptions *services.PrescriptionService
	FollowUps     *services.FollowUpService
	Wards         *services.WardService
	Beds          *services.BedService
	Bills         *services.BillService
	Reports       *services.ReportService

	// Verbose exposes internal error text in responses.
	Verbose bool
}

func (ctl *Controller) fail(c *gin.Context, err error) {
	c.JSON(apperror.Status(err), util.FailedResponse(errors.New(apperror.Public(err, ctl.Verbose))))
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, util.SuccessResponse(payload(data)))
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, util.SuccessResponse(payload(data)))
}

/*
* SuccessResponse only carries strings, string slices, generic maps and generic slices
* Re-shape typed documents into those through their JSON form
* An empty list goes out as [] rather than null
 */
func payload(data any) any {
	switch data.(type) {
	case string, []string, map[string]interface{}, []interface{}:
		return data
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprint(data)
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return string(raw)
	}
	switch v := out.(type) {
	case nil:
		return []interface{}{}
	case map[string]interface{}, []interface{}, string:
		return v
	default:
		return string(raw)
	}
}

/*
* Bind the JSON body into dst
* Turn binding and validator failures into a Validation error
 */
func (ctl *Controller) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		ctl.fail(c, bindError(err))
		return false
	}
	return true
}

func (ctl *Controller) bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		ctl.fail(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation("invalid request body: %s", err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperror.Validation("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if len(field) > 0 {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "hhmm":
		return field + " must be in HH:MM format"
	case "role":
		return field + " must be one of admin, doctor, receptionist"
	case "gt", "gte", "lt", "lte", "min", "max":
		return fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param())
	default:
		return field + " is invalid"
	}
}

// actor reads the caller put on the context by JWTAuth.
func (ctl *Controller) actor(c *gin.Context) (services.Actor, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(authorization.ContextUserID))
	if err != nil {
		ctl.fail(c, apperror.Unauthorized("invalid token subject"))
		return services.Actor{}, false
	}
	r, _ := c.Get(authorization.ContextRole)
	callerRole, _ := r.(role.Role)
	return services.Actor{ID: id, Role: callerRole}, true
}

func sendPDF(c *gin.Context, doc *services.Document) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
