// @title           Mural IFSP API
// @version         1.0
// @description     API do mural de avisos do IFSP: postagens com mídia, comentários e moderação.
// @contact.name    Mural IFSP
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "mural_backend/docs"
	"mural_backend/internal/app"
)

func main() {
	app.Run()
}
