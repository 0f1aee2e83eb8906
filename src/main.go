package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
	"vetcare/src/boot"
	"vetcare/src/config"
	"vetcare/src/lib/mailer"
	"vetcare/src/middlewares"
	"vetcare/src/types"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	_ "github.com/joho/godotenv/autoload"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const (
	apiPrefix string = "/api/v1"
)

var boardingDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if _, err := time.Parse(config.DATE_PARSE_FORMAT, date); err != nil {
		return false
	}
	return true
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("boardingdate", boardingDateValidatorFunc)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atoi, err := strconv.ParseBool(mm)
		if err == nil && atoi {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

// errorResponse maps the error taxonomy to HTTP statuses: booking conflicts
// 409, missing records 404, guard failures 422, everything else a validation
// 400.
func errorResponse(ctx *gin.Context, err error) {
	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadRequest
		switch apiErr {
		case types.ErrCageUnavailable:
			status = http.StatusConflict
		case types.ErrCageNotFound, types.ErrAppointmentNotFound, types.ErrServiceNotFound:
			status = http.StatusNotFound
		case types.ErrPaymentNotVerified:
			status = http.StatusUnprocessableEntity
		}
		ctx.JSON(status, gin.H{"error": apiErr.Message, "code": apiErr.Code})
		return
	}
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
}

func generateJWT(email string, userId uint) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userId)),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func main() {
	boot.InitDb()
	mailer.Start()
	boot.InitScheduler()

	router := setupRouter()
	appHost := os.Getenv("APP_HOST")
	if appHost == "" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOrigins = []string{appHost}
		cc.AllowCredentials = true
		router.Use(cors.New(cc))
	}

	registerValidators()
	router = maintenanceModeMiddleware(router)

	authorized := apiv1Group(router)
	authorized.Use(middlewares.AuthMiddleware)
	cageHandlers(authorized)
	bookingHandlers(authorized)
	appointmentHandlers(authorized)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %s\n", err.Error())
	}
}
