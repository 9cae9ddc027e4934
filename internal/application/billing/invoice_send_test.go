package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/clinicore/clinic-api/internal/application/billing"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/pkg/logger"
)

type stubPDFGenerator struct {
	err error
}

func (g *stubPDFGenerator) GenerateInvoicePDF(_ context.Context, _ *entity.Bill, _ *entity.Patient, _ []*entity.BillItem) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.4 stub"), nil
}

// stubChannel reads its recipient from one patient field and fails on demand.
type stubChannel struct {
	name      string
	recipient func(p *entity.Patient) string
	sendErr   error
	sentTo    []string
}

func (c *stubChannel) Name() string                           { return c.name }
func (c *stubChannel) Recipient(p *entity.Patient) string     { return c.recipient(p) }
func (c *stubChannel) Send(_ context.Context, recipient string, inv *appbilling.OutgoingInvoice) error {
	c.sentTo = append(c.sentTo, recipient)
	if c.sendErr != nil {
		return c.sendErr
	}
	if len(inv.PDF) == 0 {
		return errors.New("empty attachment")
	}
	return nil
}

func smsChannel(err error) *stubChannel {
	return &stubChannel{
		name:      entity.ChannelSMS,
		recipient: func(p *entity.Patient) string { return p.Phone },
		sendErr:   err,
	}
}

func emailChannel(err error) *stubChannel {
	return &stubChannel{
		name:      entity.ChannelEmail,
		recipient: func(p *entity.Patient) string { return p.Email },
		sendErr:   err,
	}
}

type sendFixture struct {
	bills    *memBillRepo
	patients *memPatientRepo
	notifs   *memNotifRepo
	uc       *appbilling.SendInvoiceUseCase
}

func newSendFixture(t *testing.T, patient *entity.Patient, channels ...appbilling.NotificationChannel) *sendFixture {
	t.Helper()
	bills := newMemBillRepo()
	items := newMemItemRepo()
	patients := newMemPatientRepo()
	notifs := &memNotifRepo{}

	_ = patients.Create(patient)
	_ = bills.Create(&entity.Bill{
		ID:        "bill-1",
		PatientID: patient.ID,
		Number:    "BILL-SEND",
		Status:    entity.BillStatusPending,
	})

	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := appbilling.NewSendInvoiceUseCase(bills, items, patients, notifs, &stubPDFGenerator{}, channels, log)
	return &sendFixture{bills: bills, patients: patients, notifs: notifs, uc: uc}
}

func TestSend_SMSFirstWhenPhonePresent(t *testing.T) {
	sms := smsChannel(nil)
	email := emailChannel(nil)
	f := newSendFixture(t, &entity.Patient{ID: "p1", Phone: "+15550001111", Email: "ana@example.com"}, sms, email)

	res, err := f.uc.Send(context.Background(), "bill-1")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, entity.ChannelSMS, res.Method)
	assert.Equal(t, []string{"+15550001111"}, sms.sentTo)
	assert.Empty(t, email.sentTo, "email must not fire when sms succeeds")

	attempts, err := f.notifs.ListByBill("bill-1")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Success)
	assert.Equal(t, entity.ChannelSMS, attempts[0].Channel)

	bill, _ := f.bills.GetByID("bill-1")
	assert.Equal(t, "invoice_BILL-SEND.pdf", bill.DocumentRef)
}

func TestSend_EmailDirectlyWhenNoPhone(t *testing.T) {
	sms := smsChannel(nil)
	email := emailChannel(nil)
	f := newSendFixture(t, &entity.Patient{ID: "p1", Email: "ana@example.com"}, sms, email)

	res, err := f.uc.Send(context.Background(), "bill-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ChannelEmail, res.Method)
	assert.Empty(t, sms.sentTo)

	attempts, _ := f.notifs.ListByBill("bill-1")
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Success)
	assert.Equal(t, "ana@example.com", attempts[0].Recipient)
}

func TestSend_FallsBackToEmailAndAuditsBothAttempts(t *testing.T) {
	sms := smsChannel(errors.New("gateway timeout"))
	email := emailChannel(nil)
	f := newSendFixture(t, &entity.Patient{ID: "p1", Phone: "+15550001111", Email: "ana@example.com"}, sms, email)

	res, err := f.uc.Send(context.Background(), "bill-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ChannelEmail, res.Method)

	attempts, _ := f.notifs.ListByBill("bill-1")
	require.Len(t, attempts, 2)
	assert.False(t, attempts[0].Success)
	assert.Equal(t, entity.ChannelSMS, attempts[0].Channel)
	assert.Contains(t, attempts[0].ErrorDetail, "gateway timeout")
	assert.True(t, attempts[1].Success)
	assert.Equal(t, entity.ChannelEmail, attempts[1].Channel)
}

func TestSend_NoContactMethod(t *testing.T) {
	f := newSendFixture(t, &entity.Patient{ID: "p1"}, smsChannel(nil), emailChannel(nil))

	_, err := f.uc.Send(context.Background(), "bill-1")
	assert.ErrorIs(t, err, domain.ErrNoContactMethod)

	attempts, _ := f.notifs.ListByBill("bill-1")
	assert.Empty(t, attempts, "unreachable channels record no attempts")
}

func TestSend_AllChannelsFail(t *testing.T) {
	sms := smsChannel(errors.New("gateway down"))
	email := emailChannel(errors.New("smtp refused"))
	f := newSendFixture(t, &entity.Patient{ID: "p1", Phone: "+15550001111", Email: "ana@example.com"}, sms, email)

	_, err := f.uc.Send(context.Background(), "bill-1")
	assert.ErrorIs(t, err, domain.ErrUpstream)

	attempts, _ := f.notifs.ListByBill("bill-1")
	require.Len(t, attempts, 2)
	for _, a := range attempts {
		assert.False(t, a.Success)
	}
}

func TestSend_UnknownBill(t *testing.T) {
	f := newSendFixture(t, &entity.Patient{ID: "p1", Email: "ana@example.com"}, emailChannel(nil))

	_, err := f.uc.Send(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAttempts(t *testing.T) {
	email := emailChannel(nil)
	f := newSendFixture(t, &entity.Patient{ID: "p1", Email: "ana@example.com"}, email)

	_, err := f.uc.Send(context.Background(), "bill-1")
	require.NoError(t, err)

	attempts, err := f.uc.ListAttempts(context.Background(), "bill-1")
	require.NoError(t, err)
	assert.Len(t, attempts, 1)

	_, err = f.uc.ListAttempts(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
