package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-tools/survey-report/pkg/oauth"
)

func (h *HttpEndpoints) AddOAuthAPI(rg *gin.RouterGroup) {
	oauthGroup := rg.Group("/oauth")

	oauthGroup.GET("/status", h.getOAuthStatus)
	oauthGroup.GET("/start", h.startOAuth)
	oauthGroup.GET("/callback", h.oauthCallback)
}

// getOAuthStatus reports whether a token is stored and, if so, whose it is.
func (h *HttpEndpoints) getOAuthStatus(c *gin.Context) {
	if !h.tokenStore.Exists() {
		c.JSON(http.StatusOK, gin.H{"tokenExists": false})
		return
	}

	client, ok := h.surveyClient(c)
	if !ok {
		return
	}
	user, err := client.GetUserDetails(c.Request.Context())
	if err != nil {
		slog.Warn("stored token rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{
			"tokenExists": true,
			"tokenValid":  false,
			"error":       err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tokenExists": true,
		"tokenValid":  true,
		"username":    user.Username,
	})
}

func (h *HttpEndpoints) startOAuth(c *gin.Context) {
	if h.tokenStore.Exists() {
		slog.Warn("starting oauth flow, existing token will be overwritten")
	}
	state, err := h.oauthClient.NewState(c.Query("return_to"))
	if err != nil {
		slog.Error("cannot create oauth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot start authorization"})
		return
	}
	c.Redirect(http.StatusFound, h.oauthClient.AuthCodeURL(state))
}

func (h *HttpEndpoints) oauthCallback(c *gin.Context) {
	if code := c.Query("error"); code != "" {
		authErr := &oauth.AuthorizationError{Code: code, Description: c.Query("error_description")}
		slog.Warn("authorization denied", slog.String("error", authErr.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": authErr.Error()})
		return
	}

	claims, err := h.oauthClient.ValidateState(c.Query("state"))
	if err != nil {
		slog.Warn("invalid oauth state", slog.String("clientIP", c.ClientIP()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code missing"})
		return
	}

	token, err := h.oauthClient.Exchange(c.Request.Context(), code)
	if err != nil {
		slog.Error("token exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "error while obtaining token: " + err.Error()})
		return
	}

	overwritten := h.tokenStore.Exists()
	if err := h.tokenStore.Write(token); err != nil {
		slog.Error("cannot save token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save token"})
		return
	}

	slog.Info("obtained new oauth token", slog.Bool("overwritten", overwritten))
	c.JSON(http.StatusOK, gin.H{
		"message":     "obtained new oauth token",
		"overwritten": overwritten,
		"returnTo":    claims.ReturnTo,
	})
}
