package httpserver

import echoSwagger "github.com/swaggo/echo-swagger"

// RegisterSwaggerRoutes serves the Swagger UI generated from the godoc
// annotations on the handlers.
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}
