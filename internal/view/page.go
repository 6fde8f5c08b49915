package view

// Page is the data every template executes against. Body holds the
// page-specific view.
type Page struct {
	Title   string
	Current string
	Nav     NavView
	Cart    CartView
	Path    string
	Body    interface{}
}

type HomeBody struct {
	Featured []ProductCard
}

type ProductsBody struct {
	Filters  []CategoryFilter
	Category string
	Products []ProductCard
}

type LoginBody struct {
	Email string
	Error string
}

type ProfileBody struct {
	Profile ProfileView
}

type CheckoutBody struct{}
