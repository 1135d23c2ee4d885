package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emiliopalmerini/codebuddy/internal/export"
)

func (s *Server) handleExport(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		writeError(c, "export problems", err)
		return
	}
	gzipped, _ := strconv.ParseBool(c.Query("gzip"))

	filter, err := filterFromQuery(c)
	if err != nil {
		writeError(c, "export problems", err)
		return
	}

	list, err := s.problems.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, "export problems", err)
		return
	}

	// Encode fully before writing so a failure never sends a partial file.
	var buf bytes.Buffer
	contentType := format.ContentType()
	if gzipped {
		err = export.WriteGzip(&buf, format, list)
		contentType = "application/gzip"
	} else {
		err = export.Write(&buf, format, list)
	}
	if err != nil {
		writeError(c, "export problems", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(format, gzipped)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
