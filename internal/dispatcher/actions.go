package dispatcher

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/Zickles/tanzanite/internal/logging"
)

const apiBase = "https://discord.com/api/v10"

// ActionExecutor performs moderation actions against the Discord REST API.
// The reason travels in the X-Audit-Log-Reason header so Discord's own audit
// log stays consistent with the bot's case log.
type ActionExecutor struct {
	httpPool    *HTTPPool
	rateLimiter *RateLimitMonitor
	token       string
}

func NewActionExecutor(httpPool *HTTPPool, rateLimiter *RateLimitMonitor, token string) *ActionExecutor {
	return &ActionExecutor{
		httpPool:    httpPool,
		rateLimiter: rateLimiter,
		token:       token,
	}
}

// ExecuteBan bans a user from a guild.
func (ae *ActionExecutor) ExecuteBan(guildID, userID, reason string) error {
	payload, _ := json.Marshal(map[string]interface{}{
		"delete_message_seconds": 0,
	})

	url := fmt.Sprintf("%s/guilds/%s/bans/%s", apiBase, guildID, userID)
	return ae.do("PUT", url, "ban", guildID, reason, payload)
}

// ExecuteUnban removes a guild ban.
func (ae *ActionExecutor) ExecuteUnban(guildID, userID, reason string) error {
	url := fmt.Sprintf("%s/guilds/%s/bans/%s", apiBase, guildID, userID)
	return ae.do("DELETE", url, "ban", guildID, reason, nil)
}

// ExecuteKick removes a member from a guild.
func (ae *ActionExecutor) ExecuteKick(guildID, userID, reason string) error {
	url := fmt.Sprintf("%s/guilds/%s/members/%s", apiBase, guildID, userID)
	return ae.do("DELETE", url, "kick", guildID, reason, nil)
}

// ExecuteTimeout sets a member's communication_disabled_until. A zero time
// clears an existing timeout.
func (ae *ActionExecutor) ExecuteTimeout(guildID, userID string, until time.Time, reason string) error {
	var disabledUntil interface{}
	if !until.IsZero() {
		disabledUntil = until.UTC().Format(time.RFC3339)
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"communication_disabled_until": disabledUntil,
	})

	url := fmt.Sprintf("%s/guilds/%s/members/%s", apiBase, guildID, userID)
	return ae.do("PATCH", url, "timeout", guildID, reason, payload)
}

func (ae *ActionExecutor) do(method, url, route, guildID, reason string, body []byte) error {
	if !ae.rateLimiter.CanExecute(route, guildID) {
		return fmt.Errorf("rate limited on %s for guild %s", route, guildID)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", "Bot "+ae.token)
	if reason != "" {
		req.Header.Set("X-Audit-Log-Reason", reason)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.SetBody(body)
	}

	client := ae.httpPool.GetClient()
	if err := client.DoTimeout(req, resp, 5*time.Second); err != nil {
		return fmt.Errorf("%s request failed: %w", route, err)
	}

	ae.rateLimiter.UpdateFromResponse(resp, route, guildID)

	statusCode := resp.StatusCode()
	if statusCode >= 200 && statusCode < 300 {
		logging.Info("[DISPATCH] %s %s guild=%s status=%d", method, route, guildID, statusCode)
		return nil
	}

	logging.Warn("[DISPATCH] %s %s guild=%s status=%d", method, route, guildID, statusCode)
	return fmt.Errorf("%s failed with status %d", route, statusCode)
}
