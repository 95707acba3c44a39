package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"mugix-storefront/models"
	"mugix-storefront/utils"
)

//go:embed templates/catalog.html
var templateFS embed.FS

var catalogTemplate = template.Must(template.ParseFS(templateFS, "templates/catalog.html"))

const itemsPerPage = 9

// CatalogPDFService renders the product catalog to a printable PDF
type CatalogPDFService struct {
	catalog       CatalogServiceInterface
	chromePath    string
	publicBaseURL string
	logger        *zap.Logger
}

// NewCatalogPDFService creates a new CatalogPDFService. chromePath may be
// empty, in which case common install locations are probed.
func NewCatalogPDFService(catalog CatalogServiceInterface, chromePath, publicBaseURL string, logger *zap.Logger) *CatalogPDFService {
	return &CatalogPDFService{
		catalog:       catalog,
		chromePath:    chromePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

type catalogCard struct {
	Name      string
	Category  string
	Price     string
	Image     string
	Available bool
	Colors    []models.ProductColor
}

// detectChromePath returns the configured path if it exists, then checks
// common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// paginate splits cards into pages of itemsPerPage
func paginate(cards []catalogCard) [][]catalogCard {
	var pages [][]catalogCard
	for i := 0; i < len(cards); i += itemsPerPage {
		end := min(i+itemsPerPage, len(cards))
		pages = append(pages, cards[i:end])
	}
	return pages
}

func (s *CatalogPDFService) absolute(u string) string {
	if strings.HasPrefix(u, "/") {
		return s.publicBaseURL + u
	}
	return u
}

// RenderCatalogHTML renders every product into the catalog template
func (s *CatalogPDFService) RenderCatalogHTML(ctx context.Context) (string, error) {
	products, err := s.catalog.ListProducts(ctx, models.ProductFilters{})
	if err != nil {
		return "", err
	}

	cards := make([]catalogCard, 0, len(products))
	for _, p := range products {
		card := catalogCard{
			Name:      p.Name,
			Price:     utils.FormatDH(p.Price),
			Available: p.Available,
			Colors:    p.Colors,
		}
		if p.Category != nil {
			card.Category = p.Category.Name
		}
		if primary := p.Primary(); primary != nil {
			card.Image = s.absolute(*primary)
		}
		cards = append(cards, card)
	}

	data := struct {
		Pages       [][]catalogCard
		Count       int
		GeneratedAt string
	}{
		Pages:       paginate(cards),
		Count:       len(cards),
		GeneratedAt: time.Now().Format("02/01/2006"),
	}

	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF renders the catalog HTML in headless Chrome and prints it to
// an A4 PDF
func (s *CatalogPDFService) GeneratePDF(ctx context.Context) ([]byte, error) {
	html, err := s.RenderCatalogHTML(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			Promise.all([
				document.fonts.ready,
				Promise.all(Array.from(document.images).map(img => img.complete ? null : new Promise(resolve => {
					const timeout = setTimeout(resolve, 5000);
					img.onload = img.onerror = () => { clearTimeout(timeout); resolve(); };
				})))
			]).then(() => true)
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0). // No margins, padding is in CSS
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.logger.Info("catalog PDF generated", zap.Int("bytes", len(pdfBuf)))
	return pdfBuf, nil
}
