package checkout_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/service/checkout"
	"github.com/stretchr/testify/require"
)

func TestService_Link(t *testing.T) {
	t.Parallel()
	svc := checkout.NewService("201201129135")

	cart := model.Cart{
		Items: []model.CartLine{
			{BookID: "b1", Title: "Atomic Habits", Price: 450, Quantity: 2},
			{BookID: "b2", Title: "Educated", Price: 400, Quantity: 1},
		},
		TotalPrice: 1300,
		TotalCount: 3,
	}

	link, err := svc.Link(cart)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://wa.me/201201129135?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	require.Contains(t, text, "- Atomic Habits (x2)")
	require.Contains(t, text, "- Educated (x1)")
	require.Contains(t, text, "1300")
}

func TestService_Link_EmptyCart(t *testing.T) {
	t.Parallel()
	svc := checkout.NewService("201201129135")

	_, err := svc.Link(model.Cart{})
	require.ErrorIs(t, err, errs.ErrEmptyCart)
}
