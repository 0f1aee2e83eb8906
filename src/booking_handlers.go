package main

import (
	"net/http"
	"vetcare/src/types"
	"vetcare/src/utils"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": types.ErrMissingFields.Code})
				return
			}
			userId := ctx.GetUint("id")
			appointment, err := utils.CreateBooking(&body, userId)
			if err != nil {
				errorResponse(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": types.APIResponseBooking{
				AppointmentID: appointment.ID,
				Status:        appointment.Status,
				IsBoarding:    appointment.IsBoarding(),
				PetCount:      len(body.PetIDs),
			}})
		})
	return g
}
