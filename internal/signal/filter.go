package signal

import (
	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/feature"
)

// Market session hour windows (exchange-local hour of day).
const (
	SessionAsian    = "asian"    // 00-08
	SessionEuropean = "european" // 09-16
	SessionUS       = "us"       // 17-23
)

// Criteria pre-filters bars before any rule is evaluated. Zero values mean
// "no bound". Filtering never alters scores, it only skips bars.
type Criteria struct {
	MinVolume     float64 `mapstructure:"min_volume"`
	MaxVolume     float64 `mapstructure:"max_volume"`
	AllowedHours  []int   `mapstructure:"allowed_hours"`
	MinVolatility float64 `mapstructure:"min_volatility"`
	MaxVolatility float64 `mapstructure:"max_volatility"`
	Session       string  `mapstructure:"session"`
}

// Accept reports whether the bar passes every configured bound. Relative
// volatility is read from the named volatility feature divided by close.
func (c *Criteria) Accept(bar core.Bar, snap feature.Snapshot, volFeature string) bool {
	if c == nil {
		return true
	}

	if c.MinVolume > 0 && bar.Volume < c.MinVolume {
		return false
	}
	if c.MaxVolume > 0 && bar.Volume > c.MaxVolume {
		return false
	}

	if len(c.AllowedHours) > 0 {
		hour := bar.Timestamp.Hour()
		allowed := false
		for _, h := range c.AllowedHours {
			if h == hour {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	if c.MinVolatility > 0 || c.MaxVolatility > 0 {
		var volatility float64
		if atr, ok := snap.Get(volFeature); ok && bar.Close > 0 {
			volatility = atr / bar.Close
		}
		if c.MinVolatility > 0 && volatility < c.MinVolatility {
			return false
		}
		if c.MaxVolatility > 0 && volatility > c.MaxVolatility {
			return false
		}
	}

	if c.Session != "" {
		hour := bar.Timestamp.Hour()
		switch c.Session {
		case SessionAsian:
			if hour > 8 {
				return false
			}
		case SessionEuropean:
			if hour < 9 || hour > 16 {
				return false
			}
		case SessionUS:
			if hour < 17 {
				return false
			}
		}
	}

	return true
}
