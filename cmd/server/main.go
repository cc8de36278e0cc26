package main

import "leadflow/internal/app"

// @title           Leadflow API
// @version         1.0
// @description     Lead-tracking CRUD backend.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
