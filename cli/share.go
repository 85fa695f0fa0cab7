package cli

import (
	"github.com/padraicbc/umaplan/planner"
)

// ShareCmd builds a share link for the plan and copies it to the clipboard.
type ShareCmd struct {
	Base   string `help:"Base URL for the link. Defaults to PUBLIC_URL."`
	NoCopy bool   `help:"Print the link without touching the clipboard."`
}

func (c *ShareCmd) Run(ctx *Context) error {
	base := c.Base
	if base == "" {
		base = ctx.PublicURL
	}
	link, err := ctx.Plans.Share(ctx.Ctx, ctx.Key, base)
	if err != nil {
		return err
	}

	if !c.NoCopy && ctx.Copy != nil {
		if err := ctx.Copy(link.URL); err == nil {
			ctx.Plans.Notify("Share URL copied to clipboard!", planner.KindSuccess)
			printf(ctx, "%s\n", link.URL)
			return nil
		}
		ctx.Plans.Notify("Could not copy to clipboard. Copy the link below:", planner.KindInfo)
	}
	printf(ctx, "%s\n", link.URL)
	return nil
}

// ImportCmd replaces the plan with one from a share token or link.
type ImportCmd struct {
	Token string `arg:"" help:"Share token or full share URL."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	state := ctx.Plans.Startup(ctx.Ctx, ctx.Key, shareToken(c.Token))
	renderPlan(ctx.Out, state)
	return nil
}
