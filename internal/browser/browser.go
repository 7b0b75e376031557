package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/sirupsen/logrus"

	"linkharvest/internal/config"
	"linkharvest/pkg/utils"
)

// Manager owns the single browsing session: one browser, one page. It
// restores persisted session state before any navigation and serializes it
// back after a successful authentication.
type Manager struct {
	config   *config.Config
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	logger   *logrus.Logger
}

// NewManager creates a new browser session manager
func NewManager(cfg *config.Config) *Manager {
	l := launcher.New().
		Headless(cfg.Browser.HeadlessMode).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	logger := utils.GetLogger()

	// Use system-installed Chrome/Chromium instead of downloading
	if chromePath := getSystemChromePath(); chromePath != "" {
		l = l.Bin(chromePath)
		logger.WithField("chrome_path", chromePath).Debug("Using system Chrome browser")
	} else {
		logger.Warn("System Chrome not found, Rod will download browser")
	}

	if cfg.Browser.UserAgent != "" {
		l = l.Set("user-agent", cfg.Browser.UserAgent)
	}

	return &Manager{
		config:   cfg,
		launcher: l,
		logger:   logger,
	}
}

// Start launches the browser, opens the working page and restores any
// persisted session state.
func (m *Manager) Start() error {
	url, err := m.launcher.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}
	m.browser = browser

	// Session state has to be in place before the first navigation so the
	// authenticated-landing check sees the persisted cookies.
	m.restoreState()

	page, err := m.newPage()
	if err != nil {
		browser.MustClose()
		return fmt.Errorf("failed to create page: %w", err)
	}
	m.page = page

	return nil
}

// Page returns the session's working page.
func (m *Manager) Page() *rod.Page {
	return m.page
}

// newPage creates the working page, with stealth hardening when enabled
func (m *Manager) newPage() (*rod.Page, error) {
	var page *rod.Page
	var err error

	if m.config.Browser.StealthMode {
		page, err = stealth.Page(m.browser)
	} else {
		page, err = m.browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, err
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1366,
		Height:            900,
		DeviceScaleFactor: 1,
	}); err != nil {
		m.logger.WithError(err).Warn("Failed to set viewport")
	}

	if m.config.Browser.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: m.config.Browser.UserAgent,
		}); err != nil {
			m.logger.WithError(err).Warn("Failed to set user agent")
		}
	}

	return page, nil
}

// navigate loads a URL on the working page with a bounded timeout.
func (m *Manager) navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := rod.Try(func() {
		m.page.Context(navCtx).MustNavigate(url).MustWaitLoad()
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// currentURL reads the page URL, returning "" when the page is unreachable.
func (m *Manager) currentURL() string {
	info, err := m.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// restoreState loads persisted session cookies into the browser. A missing
// or unreadable state file is not an error; the run simply starts
// unauthenticated.
func (m *Manager) restoreState() {
	data, err := os.ReadFile(m.config.Browser.StatePath)
	if err != nil {
		return
	}

	var cookies []*proto.NetworkCookieParam
	if err := json.Unmarshal(data, &cookies); err != nil {
		m.logger.WithError(err).Warn("Persisted session state is unreadable, starting fresh")
		return
	}

	if err := m.browser.SetCookies(cookies); err != nil {
		m.logger.WithError(err).Warn("Failed to restore session cookies")
		return
	}

	m.logger.WithField("cookies", len(cookies)).Debug("Restored persisted session state")
}

// SaveState serializes the current session cookies to the persisted state
// path. Persistence is best-effort; failures are logged and swallowed.
func (m *Manager) SaveState() {
	cookies, err := m.browser.GetCookies()
	if err != nil {
		m.logger.WithError(err).Debug("Failed to read session cookies")
		return
	}

	data, err := json.MarshalIndent(proto.CookiesToParams(cookies), "", "  ")
	if err != nil {
		m.logger.WithError(err).Debug("Failed to serialize session state")
		return
	}

	if err := os.WriteFile(m.config.Browser.StatePath, data, 0600); err != nil {
		m.logger.WithError(err).Debug("Failed to write session state file")
		return
	}

	m.logger.WithField("path", m.config.Browser.StatePath).Debug("Session state saved")
}

// Cleanup closes the page and browser and releases launcher resources.
func (m *Manager) Cleanup() {
	if m.page != nil {
		_ = rod.Try(func() { m.page.MustClose() })
	}
	if m.browser != nil {
		_ = rod.Try(func() { m.browser.MustClose() })
	}
	m.launcher.Cleanup()
}

// getSystemChromePath finds the system-installed Chrome/Chromium browser
func getSystemChromePath() string {
	// First check environment variables (Docker container configuration)
	if chromeBin := os.Getenv("CHROME_BIN"); chromeBin != "" {
		if _, err := os.Stat(chromeBin); err == nil {
			return chromeBin
		}
	}

	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	commonPaths := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/opt/google/chrome/chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
		"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe",
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
