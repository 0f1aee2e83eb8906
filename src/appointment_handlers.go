package main

import (
	"net/http"
	"vetcare/src/db"
	"vetcare/src/models"
	"vetcare/src/types"
	"vetcare/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func appointmentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/appointments", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var appointments []models.Appointment
			if err := db.
				Model(&models.Appointment{}).
				Where(&models.Appointment{UserID: userId}).
				Preload("Service").
				Preload("Pets").
				Preload("Cage").
				Preload("Reservation").
				Order("created_at desc").
				Limit(100).
				Find(&appointments).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": appointments, "count": len(appointments)})
		}).
		GET("/appointments/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			db := db.GetDb()
			var appointment models.Appointment
			query := db.
				Model(&models.Appointment{}).
				Where(&models.Appointment{ID: params.ID}).
				Preload("Service").
				Preload("Pets").
				Preload("Cage").
				Preload("Reservation")
			if role != "admin" && role != "staff" {
				query = query.Where(&models.Appointment{UserID: userId})
			}
			if err := query.First(&appointment).Error; err != nil {
				errorResponse(ctx, types.ErrAppointmentNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": appointment})
		}).
		PUT("/appointments/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": types.ErrMissingFields.Code})
				return
			}

			var appointment *models.Appointment
			var err error
			switch body.Action {
			case types.ACTION_VERIFY_RECEIPT:
				appointment, err = utils.VerifyReceipt(params.ID)
			case types.ACTION_REJECT_RECEIPT:
				appointment, err = utils.RejectReceipt(params.ID)
			case types.ACTION_STATUS:
				appointment, err = utils.UpdateAppointmentStatus(params.ID, body.Status, body.Notes)
			default:
				err = types.ErrMissingFields
			}
			if err != nil {
				errorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": appointment.Status})
		}).
		PUT("/appointments/:id/receipt", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.SetReceiptRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": types.ErrMissingFields.Code})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var appointment models.Appointment
				if err := tx.
					Where(&models.Appointment{ID: params.ID, UserID: userId}).
					First(&appointment).
					Error; err != nil {
					return types.ErrAppointmentNotFound
				}
				updates := map[string]any{
					"receipt_url":      body.ReceiptURL,
					"receipt_verified": false,
				}
				if body.PaymentAmount > 0 {
					updates["payment_amount"] = body.PaymentAmount
				}
				return tx.
					Model(&models.Appointment{}).
					Where(&models.Appointment{ID: params.ID}).
					Updates(updates).
					Error
			})
			if err != nil {
				errorResponse(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PUT("/appointments/:id/documents", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.VerifyDocumentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": types.ErrMissingFields.Code})
				return
			}
			result, err := utils.VerifyDocument(params.ID, body.DocumentType, *body.Approved, body.RejectionReason)
			if err != nil {
				errorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		}).
		DELETE("/appointments/:id", func(ctx *gin.Context) {
			if ctx.GetString("role") != "admin" {
				ctx.Status(http.StatusForbidden)
				return
			}
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if err := utils.DeleteAppointment(params.ID); err != nil {
				errorResponse(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
