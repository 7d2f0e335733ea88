package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSalesReturnDefaultsToPendingWithoutStockEffect(t *testing.T) {
	svc, repo := newTestService(coffee())

	ret, err := svc.AddSalesReturn(context.Background(), SalesReturnInput{
		OrderID: "order-1", ProductID: "p1", Quantity: 3, UnitPrice: 4.99, Reason: "Damaged",
	})
	require.NoError(t, err)
	require.Equal(t, ReturnStatusPending, ret.Status)
	require.InDelta(t, 14.97, ret.TotalAmount, 0.001)
	require.Equal(t, 50, repo.stock(t, "p1"))
	require.Empty(t, svc.Store().Movements())
}

func TestSalesReturnCreatedApprovedRestocksImmediately(t *testing.T) {
	svc, repo := newTestService(coffee())

	ret, err := svc.AddSalesReturn(context.Background(), SalesReturnInput{
		OrderID: "order-1", ProductID: "p1", Quantity: 3, Reason: "Damaged",
		Status: ReturnStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, 53, repo.stock(t, "p1"))

	movements := svc.Store().Movements()
	require.Len(t, movements, 1)
	require.Equal(t, MovementIn, movements[0].Type)
	require.Equal(t, "Sales return - Damaged", movements[0].Reason)
	require.Equal(t, ret.ID, movements[0].Reference)
}

func TestSalesReturnApprovalToggleMovesStockEachCrossing(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	ret, err := svc.AddSalesReturn(ctx, SalesReturnInput{
		OrderID: "order-1", ProductID: "p1", Quantity: 3, Reason: "Damaged",
	})
	require.NoError(t, err)

	approved := ReturnStatusApproved
	_, err = svc.UpdateSalesReturn(ctx, ret.ID, ReturnUpdate{Status: &approved})
	require.NoError(t, err)
	require.Equal(t, 53, repo.stock(t, "p1"))
	require.Equal(t, "Sales return approved - Damaged", svc.Store().Movements()[0].Reason)

	pending := ReturnStatusPending
	_, err = svc.UpdateSalesReturn(ctx, ret.ID, ReturnUpdate{Status: &pending})
	require.NoError(t, err)
	require.Equal(t, 50, repo.stock(t, "p1"))
	require.Equal(t, "Sales return unapproved - Damaged", svc.Store().Movements()[0].Reason)

	// Re-approving applies the effect again; the boundary is crossed anew.
	_, err = svc.UpdateSalesReturn(ctx, ret.ID, ReturnUpdate{Status: &approved})
	require.NoError(t, err)
	require.Equal(t, 53, repo.stock(t, "p1"))
	require.Len(t, svc.Store().Movements(), 3)
}

func TestSalesReturnSameStatusWriteIsANoOp(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	ret, err := svc.AddSalesReturn(ctx, SalesReturnInput{
		OrderID: "order-1", ProductID: "p1", Quantity: 3, Reason: "Damaged",
		Status: ReturnStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, 53, repo.stock(t, "p1"))

	approved := ReturnStatusApproved
	_, err = svc.UpdateSalesReturn(ctx, ret.ID, ReturnUpdate{Status: &approved})
	require.NoError(t, err)
	require.Equal(t, 53, repo.stock(t, "p1"))
	require.Len(t, svc.Store().Movements(), 1)
}

func TestSalesReturnRejectedNeverTouchesStock(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	ret, err := svc.AddSalesReturn(ctx, SalesReturnInput{
		OrderID: "order-1", ProductID: "p1", Quantity: 3, Reason: "Damaged",
	})
	require.NoError(t, err)

	rejected := ReturnStatusRejected
	_, err = svc.UpdateSalesReturn(ctx, ret.ID, ReturnUpdate{Status: &rejected})
	require.NoError(t, err)
	require.Equal(t, 50, repo.stock(t, "p1"))

	require.NoError(t, svc.DeleteSalesReturn(ctx, ret.ID))
	require.Equal(t, 50, repo.stock(t, "p1"))
	require.Empty(t, svc.Store().Movements())
}

func TestDeleteApprovedSalesReturnReversesStock(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	ret, err := svc.AddSalesReturn(ctx, SalesReturnInput{
		OrderID: "order-1", ProductID: "p1", Quantity: 3, Reason: "Damaged",
		Status: ReturnStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, 53, repo.stock(t, "p1"))

	require.NoError(t, svc.DeleteSalesReturn(ctx, ret.ID))
	require.Equal(t, 50, repo.stock(t, "p1"))
	require.Empty(t, svc.Store().SalesReturns())
	require.Equal(t, "Sales return deleted - Damaged", svc.Store().Movements()[0].Reason)
}

func TestPurchaseReturnDirectionsMirrorSalesReturns(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	ret, err := svc.AddPurchaseReturn(ctx, PurchaseReturnInput{
		PurchaseID: "pur-1", ProductID: "p1", Quantity: 4, UnitPrice: 2.5,
		Reason: "Expired", Supplier: "ABC Distributors",
	})
	require.NoError(t, err)
	require.Equal(t, ReturnStatusPending, ret.Status)
	require.Equal(t, 50, repo.stock(t, "p1"))

	approved := ReturnStatusApproved
	_, err = svc.UpdatePurchaseReturn(ctx, ret.ID, ReturnUpdate{Status: &approved})
	require.NoError(t, err)
	require.Equal(t, 46, repo.stock(t, "p1"))

	movements := svc.Store().Movements()
	require.Equal(t, MovementOut, movements[0].Type)
	require.Equal(t, "Purchase return approved - Expired", movements[0].Reason)

	pending := ReturnStatusPending
	_, err = svc.UpdatePurchaseReturn(ctx, ret.ID, ReturnUpdate{Status: &pending})
	require.NoError(t, err)
	require.Equal(t, 50, repo.stock(t, "p1"))
	require.Equal(t, MovementIn, svc.Store().Movements()[0].Type)
	require.Equal(t, "Purchase return unapproved - Expired", svc.Store().Movements()[0].Reason)
}

func TestPurchaseReturnCreatedApprovedShipsOutImmediately(t *testing.T) {
	svc, repo := newTestService(coffee())

	_, err := svc.AddPurchaseReturn(context.Background(), PurchaseReturnInput{
		PurchaseID: "pur-1", ProductID: "p1", Quantity: 4, Reason: "Expired",
		Supplier: "ABC Distributors", Status: ReturnStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, 46, repo.stock(t, "p1"))
	require.Equal(t, "Purchase return - Expired", svc.Store().Movements()[0].Reason)
}

func TestDeleteApprovedPurchaseReturnRestocks(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	ret, err := svc.AddPurchaseReturn(ctx, PurchaseReturnInput{
		PurchaseID: "pur-1", ProductID: "p1", Quantity: 4, Reason: "Expired",
		Supplier: "ABC Distributors", Status: ReturnStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, 46, repo.stock(t, "p1"))

	require.NoError(t, svc.DeletePurchaseReturn(ctx, ret.ID))
	require.Equal(t, 50, repo.stock(t, "p1"))
	require.Equal(t, MovementIn, svc.Store().Movements()[0].Type)
	require.Equal(t, "Purchase return deleted - Expired", svc.Store().Movements()[0].Reason)
}

func TestReturnValidation(t *testing.T) {
	svc, _ := newTestService(coffee())
	ctx := context.Background()

	_, err := svc.AddSalesReturn(ctx, SalesReturnInput{ProductID: "p1", Quantity: 0})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddSalesReturn(ctx, SalesReturnInput{ProductID: "p1", Quantity: 1, Status: "shipped"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateSalesReturn(ctx, "missing", ReturnUpdate{})
	require.ErrorIs(t, err, ErrReturnNotFound)

	require.ErrorIs(t, svc.DeletePurchaseReturn(ctx, "missing"), ErrReturnNotFound)
}
