package api

import (
	"github.com/0xilhan/Cult-scaner-v1/internal/api/middleware"
	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"github.com/0xilhan/Cult-scaner-v1/internal/session"
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/scan").
			To(handler.Scan).
			Doc("Investigate the team behind a crypto protocol").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scan"}).
			Reads(models.ScanRequest{}).
			Writes(models.Result{}).
			Returns(200, "OK", models.Result{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}).
			Returns(502, "Unparseable Model Response", middleware.ErrorResponse{}).
			Returns(503, "Provider Not Configured", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/scan/status").
			To(handler.Status).
			Doc("State of the most recent scan").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scan"}).
			Writes(session.Snapshot{}).
			Returns(200, "OK", session.Snapshot{}))

	container.Add(ws)
}
