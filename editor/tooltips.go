package editor

import (
	"strconv"
	"time"

	"caret/common"
	"caret/config"
	"caret/dom"
)

// TooltipOptions selects where and when a tooltip shows. The zero value
// means "use the host defaults".
type TooltipOptions struct {
	Placement   common.TooltipPlacement
	HidingDelay time.Duration
}

// AttrTooltips is the default Tooltips implementation. There is no live
// presentation layer on the server side, so it projects the hint into the
// title attribute plus data attributes the page script picks up.
type AttrTooltips struct {
	placement common.TooltipPlacement
	delay     time.Duration
}

func NewTooltips(cfg config.TooltipsConfig) *AttrTooltips {
	return &AttrTooltips{
		placement: cfg.Placement,
		delay:     time.Duration(cfg.HidingDelay) * time.Millisecond,
	}
}

func (t *AttrTooltips) Attach(el dom.Element, label string, opts TooltipOptions) {
	if el.IsZero() || len(label) == 0 {
		return
	}
	if opts == (TooltipOptions{}) {
		opts.Placement = t.placement
	}
	if opts.HidingDelay <= 0 {
		opts.HidingDelay = t.delay
	}
	el.SetAttr("title", label)
	el.SetData("tooltip-placement", opts.Placement.String())
	el.SetData("tooltip-delay", strconv.FormatInt(opts.HidingDelay.Milliseconds(), 10))
}
