package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
	"vetcare/src/db"
	"vetcare/src/lib"
	"vetcare/src/models"
	"vetcare/src/types"
	"vetcare/src/utils"

	"github.com/gin-gonic/gin"
)

func cageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/cages/available", func(ctx *gin.Context) {
			var params types.AvailabilityQueryParams
			if err := ctx.ShouldBindQuery(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			rng, err := types.ParseDateRange(params.CheckInDate, params.CheckOutDate)
			if err != nil {
				errorResponse(ctx, err)
				return
			}

			cacheKey := fmt.Sprintf("availability:%s:%s", params.CheckInDate, params.CheckOutDate)
			if rd := lib.GetRedisClient(); rd != nil {
				if cached, err := rd.Get(context.Background(), cacheKey).Result(); err == nil {
					ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
					return
				}
			}

			cages, err := utils.FindAvailableCages(rng)
			if err != nil {
				errorResponse(ctx, err)
				return
			}
			body, err := json.Marshal(gin.H{"data": cages, "count": len(cages)})
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if rd := lib.GetRedisClient(); rd != nil {
				if _, err := rd.SetEx(context.Background(), cacheKey, string(body), time.Minute).Result(); err != nil {
					log.Printf("Error caching value [%s]: %s\n", cacheKey, err.Error())
				}
			}
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", body)
		}).
		GET("/cages", func(ctx *gin.Context) {
			db := db.GetDb()
			var cages []models.Cage
			if err := db.
				Model(&models.Cage{}).
				Order("number asc").
				Find(&cages).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": cages, "count": len(cages)})
		}).
		GET("/cages/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var cage models.Cage
			if err := db.
				Model(&models.Cage{}).
				Where(&models.Cage{ID: params.ID}).
				First(&cage).
				Error; err != nil {
				errorResponse(ctx, types.ErrCageNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": cage})
		})
	return g
}
