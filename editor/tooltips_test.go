package editor

import (
	"testing"
	"time"

	"caret/common"
	"caret/config"
	"caret/dom"
)

func testTooltips() *AttrTooltips {
	return NewTooltips(config.TooltipsConfig{
		Placement:   common.TooltipPlacementTop,
		HidingDelay: 300,
	})
}

func TestTooltipsAttach(t *testing.T) {
	tips := testTooltips()
	d := dom.NewDocument()

	t.Run("explicit options", func(t *testing.T) {
		el := d.CreateElement("span")
		tips.Attach(el, "Citation", TooltipOptions{
			Placement:   common.TooltipPlacementBottom,
			HidingDelay: 150 * time.Millisecond,
		})

		if got := el.Attr("title"); got != "Citation" {
			t.Errorf("title = %q", got)
		}
		if got := el.Data("tooltip-placement"); got != "bottom" {
			t.Errorf("placement = %q", got)
		}
		if got := el.Data("tooltip-delay"); got != "150" {
			t.Errorf("delay = %q", got)
		}
	})

	t.Run("zero options use defaults", func(t *testing.T) {
		el := d.CreateElement("span")
		tips.Attach(el, "Details", TooltipOptions{})

		if got := el.Data("tooltip-placement"); got != "top" {
			t.Errorf("placement = %q", got)
		}
		if got := el.Data("tooltip-delay"); got != "300" {
			t.Errorf("delay = %q", got)
		}
	})

	t.Run("zero delay falls back", func(t *testing.T) {
		el := d.CreateElement("span")
		tips.Attach(el, "Details", TooltipOptions{Placement: common.TooltipPlacementRight})

		if got := el.Data("tooltip-placement"); got != "right" {
			t.Errorf("placement = %q", got)
		}
		if got := el.Data("tooltip-delay"); got != "300" {
			t.Errorf("delay = %q", got)
		}
	})

	t.Run("empty label is ignored", func(t *testing.T) {
		el := d.CreateElement("span")
		tips.Attach(el, "", TooltipOptions{})

		if got := el.Attr("title"); got != "" {
			t.Errorf("title = %q", got)
		}
	})

	t.Run("zero element does not panic", func(t *testing.T) {
		tips.Attach(dom.Element{}, "Citation", TooltipOptions{})
	})
}
