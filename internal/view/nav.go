package view

// Page identifiers used to mark the active navigation link.
const (
	PageHome     = "index"
	PageProducts = "products"
	PageCheckout = "checkout"
	PageLogin    = "login"
	PageProfile  = "profile"
)

type NavLink struct {
	Label  string
	Href   string
	Active bool
}

type NavView struct {
	Links    []NavLink
	SignedIn bool
}

var navPages = []struct {
	page  string
	label string
	href  string
}{
	{PageHome, "Home", "/"},
	{PageProducts, "Products", "/products"},
	{PageCheckout, "Checkout", "/checkout"},
}

// NewNavView marks the link for current as active. The account link points
// at the profile when signed in and at the login page otherwise; both count
// as the account page.
func NewNavView(current string, signedIn bool) NavView {
	links := make([]NavLink, 0, len(navPages)+1)
	for _, p := range navPages {
		links = append(links, NavLink{
			Label:  p.label,
			Href:   p.href,
			Active: p.page == current,
		})
	}

	account := NavLink{Label: "Login", Href: "/login"}
	if signedIn {
		account = NavLink{Label: "Profile", Href: "/profile"}
	}
	account.Active = current == PageLogin || current == PageProfile
	links = append(links, account)

	return NavView{Links: links, SignedIn: signedIn}
}
