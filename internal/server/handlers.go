package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/sigstudio/internal/editor"
	"github.com/ByLCY/sigstudio/layout"
	"github.com/ByLCY/sigstudio/renderer"
	"github.com/ByLCY/sigstudio/signature"
)

type createProfileRequest struct {
	Name string `json:"name"`
}

type saveLayoutRequest struct {
	ProfileID string `json:"profileId" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

type suggestRequest struct {
	BusinessType string `json:"businessType" binding:"required"`
}

type copyResponse struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

func (s *Server) listProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profiles": s.editor.Profiles()})
}

func (s *Server) createProfile(c *gin.Context) {
	var req createProfileRequest
	// 请求体可以为空，此时使用默认名称
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
	}
	cfg, err := s.editor.CreateProfile(c.Request.Context(), req.Name)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, cfg)
}

func (s *Server) getProfile(c *gin.Context) {
	cfg, err := s.editor.Profile(c.Param("id"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) updateProfile(c *gin.Context) {
	var cfg signature.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	out, err := s.editor.UpdateProfile(c.Request.Context(), c.Param("id"), cfg)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteProfile(c *gin.Context) {
	if err := s.editor.DeleteProfile(c.Request.Context(), c.Param("id")); err != nil {
		s.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) preview(c *gin.Context) {
	format, err := renderer.ParseFormat(c.Query("format"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}
	data, err := s.editor.Render(c.Param("id"), format)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), data)
}

func (s *Server) layoutTree(c *gin.Context) {
	res, err := s.editor.Layout(c.Param("id"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	var buf bytes.Buffer
	if err := layout.EncodeDebugJSON(&buf, res); err != nil {
		s.respondErr(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

func (s *Server) copyProfile(c *gin.Context) {
	var clip editor.Buffer
	if err := s.editor.Copy(c.Request.Context(), c.Param("id"), &clip); err != nil {
		s.respondErr(c, err)
		return
	}
	html, text := clip.Contents()
	c.JSON(http.StatusOK, copyResponse{HTML: html, Text: text})
}

func (s *Server) uploadLogo(c *gin.Context) {
	if s.logoMax > 0 {
		// multipart 头部留出余量，文件本身的上限由 logo 包检查
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.logoMax+64<<10)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(c, http.StatusRequestEntityTooLarge, "logo_too_large", err.Error())
			return
		}
		s.respondError(c, http.StatusBadRequest, "invalid_request", "missing multipart field \"file\"")
		return
	}
	f, err := fh.Open()
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	defer f.Close()

	cfg, err := s.editor.SetLogo(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) suggestFooter(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.BusinessType) == "" {
		s.respondError(c, http.StatusBadRequest, "invalid_request", "businessType is required")
		return
	}
	cfg, err := s.editor.SuggestFooter(c.Request.Context(), c.Param("id"), req.BusinessType)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.BusinessType) == "" {
		s.respondError(c, http.StatusBadRequest, "invalid_request", "businessType is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"footerServices": s.editor.Suggest(c.Request.Context(), req.BusinessType)})
}

func (s *Server) applyLayout(c *gin.Context) {
	cfg, err := s.editor.ApplyLayout(c.Request.Context(), c.Param("id"), c.Param("layoutId"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) applyPreset(c *gin.Context) {
	cfg, err := s.editor.ApplyPreset(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) listLayouts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"layouts": s.editor.Layouts()})
}

func (s *Server) saveLayout(c *gin.Context) {
	var req saveLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	l, err := s.editor.SaveLayout(c.Request.Context(), req.ProfileID, req.Name)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (s *Server) deleteLayout(c *gin.Context) {
	if err := s.editor.DeleteLayout(c.Request.Context(), c.Param("id")); err != nil {
		s.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": s.editor.Presets()})
}
