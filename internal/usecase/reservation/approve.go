package reservation

import (
	"context"
	"fmt"
	"log"

	"github.com/whatsport/whatsport-api/internal/clock"
	domain "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/notify"
	"github.com/whatsport/whatsport-api/internal/payments"
)

type ApproveReservation struct {
	repo     domain.Repository
	notify   *notify.Dispatcher
	payments *payments.Client
	clock    clock.Clock
}

func NewApproveReservation(
	repo domain.Repository,
	notify *notify.Dispatcher,
	pay *payments.Client,
	clk clock.Clock,
) *ApproveReservation {
	return &ApproveReservation{
		repo:     repo,
		notify:   notify,
		payments: pay,
		clock:    clk,
	}
}

func (uc *ApproveReservation) Execute(
	ctx context.Context,
	manager Actor,
	reservationID string,
) (*models.Reservation, error) {

	res, space, err := getReservationForManager(ctx, uc.repo, manager.ID, reservationID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanApprove(domain.Status(res.Status)); err != nil {
		return nil, err
	}

	res.Status = string(domain.StatusApproved)
	res.UpdatedAt = uc.clock.Now()

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	// Checkout creation is best-effort; the approval stands either way.
	actionURL := "/player/reservations/" + res.ID
	if uc.payments != nil {
		checkoutURL, err := uc.payments.CreateCheckout(ctx, payments.CheckoutInput{
			ReservationID: res.ID,
			Title:         fmt.Sprintf("%s at %s", res.SportType, space.Name),
			Amount:        res.TotalPrice,
			PayerEmail:    res.OrganizerEmail,
		})
		if err != nil {
			log.Println("payment checkout error:", err)
		} else if checkoutURL != "" {
			actionURL = checkoutURL
		}
	}

	uc.notify.Dispatch(notify.Notification{
		UserID:    res.OrganizerID,
		Type:      models.NotificationReservationApproved,
		Title:     "Reservation approved",
		Message:   fmt.Sprintf("Your reservation for %s at %s was approved", res.SportType, space.Name),
		RelatedID: res.ID,
		ActionURL: actionURL,
	})

	return res, nil
}
