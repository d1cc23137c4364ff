package playwright

import (
	"context"
	"fmt"

	pw "github.com/playwright-community/playwright-go"

	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

// page adapts a playwright tab to domain.Page. playwright-go calls are
// synchronous, so ctx is only checked before each call.
type page struct {
	page pw.Page
}

func (p *page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.page.Goto(url, pw.PageGotoOptions{WaitUntil: pw.WaitUntilStateLoad}); err != nil {
		return errors.Wrap(err, errors.CodeNavigationError, fmt.Sprintf("navigation to %s failed", url))
	}
	return nil
}

func (p *page) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.page.Locator(selector).Click(); err != nil {
		return errors.Wrap(err, errors.CodeInteractionError, fmt.Sprintf("click %q failed", selector))
	}
	return nil
}

func (p *page) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.page.Locator(selector).Fill(value); err != nil {
		return errors.Wrap(err, errors.CodeInteractionError, fmt.Sprintf("fill %q failed", selector))
	}
	return nil
}

func (p *page) Hover(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.page.Locator(selector).Hover(); err != nil {
		return errors.Wrap(err, errors.CodeInteractionError, fmt.Sprintf("hover %q failed", selector))
	}
	return nil
}

func (p *page) WaitForSelector(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.page.Locator(selector).WaitFor(); err != nil {
		return errors.Wrap(err, errors.CodeInteractionError, fmt.Sprintf("waiting for %q failed", selector))
	}
	return nil
}

func (p *page) Wait(ctx context.Context, millis float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.page.WaitForTimeout(millis)
	return nil
}

func (p *page) Screenshot(ctx context.Context, path string, fullPage bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Screenshot(pw.PageScreenshotOptions{
		Path:     pw.String(path),
		FullPage: pw.Bool(fullPage),
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeScreenshotError, fmt.Sprintf("screenshot to %s failed", path))
	}
	return nil
}

func (p *page) URL() string {
	return p.page.URL()
}
