package view

import (
	"strconv"

	"github.com/norsbakery/storefront/internal/app/model"
)

const (
	OrdersErrorMessage = "Error loading orders."
	NoOrdersMessage    = "You haven't placed any orders yet."
)

const joinedDateLayout = "2 Jan 2006"

type ProfileView struct {
	Email       string
	DisplayName string
	Joined      string
	Orders      []OrderCard
	// OrdersMessage replaces the order list when it is empty or failed.
	OrdersMessage string
}

type OrderCard struct {
	ID    string
	Name  string
	Total string
}

// NewProfileView projects the signed-in user and their order history.
// ordersErr is the error from fetching the history, if any.
func NewProfileView(user *model.User, orders []model.Order, ordersErr error) ProfileView {
	v := ProfileView{}
	if user != nil {
		v.Email = user.Email
		v.DisplayName = user.DisplayName()
		if !user.CreatedAt.IsZero() {
			v.Joined = user.CreatedAt.Format(joinedDateLayout)
		}
	}

	switch {
	case ordersErr != nil:
		v.OrdersMessage = OrdersErrorMessage
	case len(orders) == 0:
		v.OrdersMessage = NoOrdersMessage
	default:
		v.Orders = make([]OrderCard, 0, len(orders))
		for _, o := range orders {
			v.Orders = append(v.Orders, OrderCard{
				ID:    "#" + strconv.FormatInt(o.ID, 10),
				Name:  o.Name,
				Total: FormatPrice(o.Price),
			})
		}
	}
	return v
}
