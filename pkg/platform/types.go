package platform

// Flattened shapes handed to tool handlers.  The raw wire payloads nest
// pricing, media and stock under sub-objects; we collapse them here once so
// every tool serializes the same agent-friendly structure.

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	InStock     bool   `json:"inStock"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type CartItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal,omitempty"`
}

type Cart struct {
	ID            string     `json:"id,omitempty"`
	Items         []CartItem `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
	Subtotal      string     `json:"subtotal,omitempty"`
	Currency      string     `json:"currency,omitempty"`
}

type CartTotals struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping,omitempty"`
	Tax      string `json:"tax,omitempty"`
	Total    string `json:"total"`
	Currency string `json:"currency,omitempty"`
}

type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt,omitempty"`
	Content     string `json:"content,omitempty"`
	URL         string `json:"url,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

type Member struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// SitePage is one entry of the site's navigational structure.  AppID is set
// when the page is owned by an installed sub-application.
type SitePage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	AppID string `json:"appId,omitempty"`
}

type SiteStructure struct {
	Pages    []SitePage `json:"pages"`
	Prefixes []string   `json:"prefixes"`
}

// --- wire payloads -------------------------------------------------------

type wireMoney struct {
	Amount    string `json:"amount"`
	Formatted string `json:"formattedAmount"`
	Currency  string `json:"currency"`
}

func (m wireMoney) display() string {
	if m.Formatted != "" {
		return m.Formatted
	}
	return m.Amount
}

type wireProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceData   struct {
		Price wireMoney `json:"price"`
	} `json:"priceData"`
	Stock struct {
		InStock bool `json:"inStock"`
	} `json:"stock"`
	ProductPageURL string `json:"productPageUrl"`
	Media          struct {
		MainImage struct {
			URL string `json:"url"`
		} `json:"mainMedia"`
	} `json:"media"`
}

func (p wireProduct) flatten() Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.PriceData.Price.display(),
		Currency:    p.PriceData.Price.Currency,
		InStock:     p.Stock.InStock,
		URL:         p.ProductPageURL,
		ImageURL:    p.Media.MainImage.URL,
	}
}

type wireCart struct {
	ID        string `json:"id"`
	LineItems []struct {
		CatalogID string    `json:"catalogItemId"`
		Name      string    `json:"productName"`
		Quantity  int       `json:"quantity"`
		LineTotal wireMoney `json:"lineTotal"`
	} `json:"lineItems"`
	Subtotal wireMoney `json:"subtotal"`
	Currency string    `json:"currency"`
}

func (c wireCart) flatten() Cart {
	cart := Cart{
		ID:       c.ID,
		Items:    make([]CartItem, 0, len(c.LineItems)),
		Subtotal: c.Subtotal.display(),
		Currency: c.Currency,
	}
	for _, li := range c.LineItems {
		cart.Items = append(cart.Items, CartItem{
			ProductID: li.CatalogID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			LineTotal: li.LineTotal.display(),
		})
		cart.TotalQuantity += li.Quantity
	}
	return cart
}

type wirePost struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	ContentText string `json:"contentText"`
	URL         struct {
		Base string `json:"base"`
		Path string `json:"path"`
	} `json:"url"`
	AuthorName     string `json:"authorName"`
	FirstPublished string `json:"firstPublishedDate"`
}

func (p wirePost) flatten() Post {
	return Post{
		ID:          p.ID,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Content:     p.ContentText,
		URL:         p.URL.Base + p.URL.Path,
		Author:      p.AuthorName,
		PublishedAt: p.FirstPublished,
	}
}
