package controllers

import (
	"MediTrack/authorization"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) Bill(r gin.IRouter) {
	bills := r.Group("/bills")
	{
		bills.POST("", authorization.Authorize(role.Bills, role.Create), ctl.CreateBill)
		bills.GET("", authorization.Authorize(role.Bills, role.View), ctl.ListBills)
		bills.GET("/summary", authorization.Authorize(role.Reports, role.View), ctl.BillingSummary)
		bills.GET("/:id", authorization.Authorize(role.Bills, role.View), ctl.GetBill)
		bills.PATCH("/:id", authorization.Authorize(role.Bills, role.Update), ctl.UpdateBill)
		bills.POST("/:id/payments", authorization.Authorize(role.Bills, role.Payment), ctl.RecordPayment)
		bills.POST("/:id/cancel", authorization.Authorize(role.Bills, role.Update), ctl.CancelBill)
		// refunds are admin only, as deletes are
		bills.POST("/:id/refund", authorization.Authorize(role.Bills, role.Delete), ctl.RefundBill)
		bills.DELETE("/:id", authorization.Authorize(role.Bills, role.Delete), ctl.DeleteBill)
		bills.GET("/:id/pdf", authorization.Authorize(role.Bills, role.View), ctl.BillPDF)
	}
}

func (ctl *Controller) CreateBill(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.BillRequest
	if !ctl.bind(c, &req) {
		return
	}
	b, err := ctl.Bills.Create(c.Request.Context(), actor, req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	created(c, b)
}

func (ctl *Controller) ListBills(c *gin.Context) {
	var q models.BillQuery
	if !ctl.bindQuery(c, &q) {
		return
	}
	bills, err := ctl.Bills.List(c.Request.Context(), q)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, bills)
}

func (ctl *Controller) GetBill(c *gin.Context) {
	b, err := ctl.Bills.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}

func (ctl *Controller) UpdateBill(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.BillUpdate
	if !ctl.bind(c, &req) {
		return
	}
	b, err := ctl.Bills.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}

/*
* Bind amount and method
* Pass to the service; a concurrent write comes back as 409
 */
func (ctl *Controller) RecordPayment(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	var req models.PaymentRequest
	if !ctl.bind(c, &req) {
		return
	}
	b, err := ctl.Bills.RecordPayment(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}

func (ctl *Controller) CancelBill(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	b, err := ctl.Bills.Cancel(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}

func (ctl *Controller) RefundBill(c *gin.Context) {
	actor, good := ctl.actor(c)
	if !good {
		return
	}
	b, err := ctl.Bills.Refund(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, b)
}

func (ctl *Controller) DeleteBill(c *gin.Context) {
	if err := ctl.Bills.Delete(c.Request.Context(), c.Param("id")); err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, "Bill deleted")
}

func (ctl *Controller) BillPDF(c *gin.Context) {
	doc, err := ctl.Reports.BillPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	sendPDF(c, doc)
}

// BillingSummary answers GET /bills/summary?from=&to=.
func (ctl *Controller) BillingSummary(c *gin.Context) {
	var q models.BillQuery
	if !ctl.bindQuery(c, &q) {
		return
	}
	sum, err := ctl.Bills.Summary(c.Request.Context(), q)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ok(c, sum)
}
