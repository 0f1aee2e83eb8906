package utils

import (
	"testing"
	"vetcare/src/models"
	"vetcare/src/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mustBook(t *testing.T, f fixtures, paymentMethod string) *models.Appointment {
	t.Helper()
	appointment, err := CreateBooking(bookingParams(f, "2025-03-01", "2025-03-04", paymentMethod), f.User.ID)
	require.NoError(t, err)
	return appointment
}

func reloadState(t *testing.T, d *gorm.DB, appointmentId uint, cageId uint) (models.Appointment, models.Cage, models.Reservation) {
	t.Helper()
	var appointment models.Appointment
	var cage models.Cage
	var reservation models.Reservation
	require.NoError(t, d.First(&appointment, appointmentId).Error)
	require.NoError(t, d.First(&cage, cageId).Error)
	require.NoError(t, d.Where(&models.Reservation{AppointmentID: appointmentId}).First(&reservation).Error)
	return appointment, cage, reservation
}

func TestPaymentGuardBlocksCheckIn(t *testing.T) {
	d := newTestDB(t, "transitions_guard")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, "gcash")

	for _, target := range []types.AppointmentStatus{types.APPOINTMENT_IN_PROGRESS, types.APPOINTMENT_COMPLETED} {
		_, err := UpdateAppointmentStatus(appointment.ID, target, "")
		assert.ErrorIs(t, err, types.ErrPaymentNotVerified)
	}

	stored, cage, reservation := reloadState(t, d, appointment.ID, f.Cage.ID)
	assert.Equal(t, types.APPOINTMENT_PENDING_PAYMENT, stored.Status)
	assert.Equal(t, types.CAGE_AVAILABLE, cage.Status)
	assert.Equal(t, types.RESERVATION_RESERVED, reservation.Status)
}

func TestCashBypassesReceiptVerification(t *testing.T) {
	d := newTestDB(t, "transitions_cash")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, types.PAYMENT_CASH)

	_, err := UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_IN_PROGRESS, "")
	require.NoError(t, err)

	_, cage, reservation := reloadState(t, d, appointment.ID, f.Cage.ID)
	assert.Equal(t, types.CAGE_OCCUPIED, cage.Status)
	assert.Equal(t, types.RESERVATION_CHECKED_IN, reservation.Status)
}

func TestReceiptVerificationFlow(t *testing.T) {
	d := newTestDB(t, "transitions_receipt")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, "gcash")

	// No receipt uploaded yet.
	_, err := VerifyReceipt(appointment.ID)
	assert.ErrorIs(t, err, types.ErrMissingFields)

	require.NoError(t, d.
		Model(&models.Appointment{}).
		Where(&models.Appointment{ID: appointment.ID}).
		Update("receipt_url", "https://cdn.example.com/receipts/1.jpg").
		Error)

	updated, err := VerifyReceipt(appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, types.APPOINTMENT_PAID, updated.Status)
	assert.True(t, updated.ReceiptVerified)

	// Check-in is allowed now and mirrors onto the cage.
	_, err = UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_IN_PROGRESS, "")
	require.NoError(t, err)
	_, cage, reservation := reloadState(t, d, appointment.ID, f.Cage.ID)
	assert.Equal(t, types.CAGE_OCCUPIED, cage.Status)
	require.NotNil(t, cage.CurrentAppointmentID)
	assert.Equal(t, appointment.ID, *cage.CurrentAppointmentID)
	require.NotNil(t, cage.CurrentPetID)
	assert.Equal(t, f.Pet.ID, *cage.CurrentPetID)
	require.NotNil(t, cage.CheckInDate)
	assert.Equal(t, types.RESERVATION_CHECKED_IN, reservation.Status)

	rejected, err := RejectReceipt(appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, types.APPOINTMENT_PENDING_PAYMENT, rejected.Status)
	assert.False(t, rejected.ReceiptVerified)
}

func TestCheckOutReleasesCage(t *testing.T) {
	d := newTestDB(t, "transitions_checkout")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, types.PAYMENT_CASH)

	_, err := UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_IN_PROGRESS, "")
	require.NoError(t, err)
	_, err = UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_COMPLETED, "")
	require.NoError(t, err)

	stored, cage, reservation := reloadState(t, d, appointment.ID, f.Cage.ID)
	assert.Equal(t, types.APPOINTMENT_COMPLETED, stored.Status)
	assert.Equal(t, types.CAGE_AVAILABLE, cage.Status)
	assert.Nil(t, cage.CurrentAppointmentID)
	assert.Nil(t, cage.CurrentPetID)
	assert.Nil(t, cage.CheckInDate)
	assert.Equal(t, types.RESERVATION_CHECKED_OUT, reservation.Status)
}

func TestCancelBeforeCheckInLeavesCageUntouched(t *testing.T) {
	d := newTestDB(t, "transitions_cancel")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, "gcash")

	_, err := UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_CANCELLED, "client no-show")
	require.NoError(t, err)

	stored, cage, reservation := reloadState(t, d, appointment.ID, f.Cage.ID)
	assert.Equal(t, types.APPOINTMENT_CANCELLED, stored.Status)
	assert.Equal(t, "client no-show", stored.Notes)
	assert.Equal(t, types.CAGE_AVAILABLE, cage.Status)
	assert.Equal(t, types.RESERVATION_CANCELLED, reservation.Status)
}

func TestIdempotentReapply(t *testing.T) {
	d := newTestDB(t, "transitions_idempotent")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, types.PAYMENT_CASH)

	_, err := UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_IN_PROGRESS, "")
	require.NoError(t, err)
	first, firstCage, firstRes := reloadState(t, d, appointment.ID, f.Cage.ID)

	// Retry after a timeout replays the same transition.
	_, err = UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_IN_PROGRESS, "")
	require.NoError(t, err)
	second, secondCage, secondRes := reloadState(t, d, appointment.ID, f.Cage.ID)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, firstCage.Status, secondCage.Status)
	assert.Equal(t, *firstCage.CurrentAppointmentID, *secondCage.CurrentAppointmentID)
	assert.Equal(t, firstRes.Status, secondRes.Status)
}

func TestOccupancyMirror(t *testing.T) {
	d := newTestDB(t, "transitions_mirror")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, types.PAYMENT_CASH)

	assertMirror := func() {
		var cage models.Cage
		require.NoError(t, d.First(&cage, f.Cage.ID).Error)
		var checkedIn int64
		require.NoError(t, d.
			Model(&models.Reservation{}).
			Where(&models.Reservation{CageID: f.Cage.ID, Status: types.RESERVATION_CHECKED_IN}).
			Count(&checkedIn).Error)
		if cage.Status == types.CAGE_OCCUPIED {
			assert.EqualValues(t, 1, checkedIn)
			assert.NotNil(t, cage.CurrentAppointmentID)
		} else {
			assert.EqualValues(t, 0, checkedIn)
			assert.Nil(t, cage.CurrentAppointmentID)
		}
	}

	assertMirror()
	_, err := UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_IN_PROGRESS, "")
	require.NoError(t, err)
	assertMirror()
	_, err = UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_COMPLETED, "")
	require.NoError(t, err)
	assertMirror()
}

func TestInvalidTargetStatusRejected(t *testing.T) {
	d := newTestDB(t, "transitions_invalid")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, "gcash")

	_, err := UpdateAppointmentStatus(appointment.ID, types.AppointmentStatus("archived"), "")
	assert.ErrorIs(t, err, types.ErrMissingFields)

	// Direct moves into receipt-owned states go through their own actions.
	_, err = UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_PAID, "")
	assert.ErrorIs(t, err, types.ErrMissingFields)

	_, err = UpdateAppointmentStatus(4242, types.APPOINTMENT_CONFIRMED, "")
	assert.ErrorIs(t, err, types.ErrAppointmentNotFound)
}

func TestConfirmRejectedFromTerminalStatus(t *testing.T) {
	d := newTestDB(t, "transitions_terminal")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, "gcash")

	_, err := UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_CANCELLED, "")
	require.NoError(t, err)
	_, err = UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_CONFIRMED, "")
	assert.ErrorIs(t, err, types.ErrMissingFields)

	stored, _, _ := reloadState(t, d, appointment.ID, f.Cage.ID)
	assert.Equal(t, types.APPOINTMENT_CANCELLED, stored.Status)
}

func TestDocumentRejectionForcesRejected(t *testing.T) {
	d := newTestDB(t, "transitions_documents")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, types.PAYMENT_CASH)

	_, err := UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_IN_PROGRESS, "")
	require.NoError(t, err)

	_, err = VerifyDocument(appointment.ID, types.DOCUMENT_ID, false, "")
	assert.ErrorIs(t, err, types.ErrMissingFields)

	result, err := VerifyDocument(appointment.ID, types.DOCUMENT_ID, false, "blurry photo")
	require.NoError(t, err)
	assert.True(t, result.StatusChanged)
	assert.False(t, result.BothVerified)

	stored, cage, reservation := reloadState(t, d, appointment.ID, f.Cage.ID)
	assert.Equal(t, types.APPOINTMENT_REJECTED, stored.Status)
	require.NotNil(t, stored.IDDocumentRejectionReason)
	assert.Equal(t, "blurry photo", *stored.IDDocumentRejectionReason)
	assert.Equal(t, types.CAGE_AVAILABLE, cage.Status)
	assert.Nil(t, cage.CurrentAppointmentID)
	assert.Equal(t, types.RESERVATION_CANCELLED, reservation.Status)
}

func TestDocumentApprovalLeavesStatusAlone(t *testing.T) {
	d := newTestDB(t, "transitions_documents_ok")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, types.PAYMENT_CASH)

	result, err := VerifyDocument(appointment.ID, types.DOCUMENT_ID, true, "")
	require.NoError(t, err)
	assert.False(t, result.BothVerified)
	assert.False(t, result.StatusChanged)

	result, err = VerifyDocument(appointment.ID, types.DOCUMENT_SIGNATURE, true, "")
	require.NoError(t, err)
	assert.True(t, result.BothVerified)
	assert.False(t, result.StatusChanged)

	stored, _, _ := reloadState(t, d, appointment.ID, f.Cage.ID)
	assert.Equal(t, types.APPOINTMENT_PENDING, stored.Status)
	assert.True(t, stored.IDDocumentVerified)
	assert.True(t, stored.SignatureVerified)
}

func TestDeleteAppointmentReversesOccupancy(t *testing.T) {
	d := newTestDB(t, "transitions_delete")
	f := seedBoardingFixtures(t, d)
	appointment := mustBook(t, f, types.PAYMENT_CASH)

	_, err := UpdateAppointmentStatus(appointment.ID, types.APPOINTMENT_IN_PROGRESS, "")
	require.NoError(t, err)
	require.NoError(t, DeleteAppointment(appointment.ID))

	var count int64
	require.NoError(t, d.Unscoped().Model(&models.Appointment{}).Where("id = ?", appointment.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	var cage models.Cage
	require.NoError(t, d.First(&cage, f.Cage.ID).Error)
	assert.Equal(t, types.CAGE_AVAILABLE, cage.Status)
	assert.Nil(t, cage.CurrentAppointmentID)

	// The ledger entry stays, terminalized.
	var reservation models.Reservation
	require.NoError(t, d.Where(&models.Reservation{AppointmentID: appointment.ID}).First(&reservation).Error)
	assert.Equal(t, types.RESERVATION_CANCELLED, reservation.Status)

	assert.ErrorIs(t, DeleteAppointment(appointment.ID), types.ErrAppointmentNotFound)
}
