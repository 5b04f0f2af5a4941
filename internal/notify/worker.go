package notify

import (
	"context"
	"sync"

	"fixsmart/internal/model"

	"github.com/sirupsen/logrus"
)

// Notifier renders and delivers the per-request emails off the request path.
// Mail delivery used to be synchronous inside the submission handler, so a
// slow transport stalled the customer's response; the queue decouples them.
// Sends are best-effort with no retry: a failure is logged and dropped.
type Notifier struct {
	ctx      context.Context
	cancel   context.CancelFunc
	renderer *Renderer
	sender   Sender
	logger   *logrus.Entry
	jobs     chan Message
	wg       sync.WaitGroup
}

// Config holds the configuration for the notifier worker
type Config struct {
	Sender    Sender
	Logger    *logrus.Entry
	QueueSize int
}

// NewNotifier creates the notifier worker
func NewNotifier(cfg Config) *Notifier {
	ctx, cancel := context.WithCancel(context.Background())
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 128
	}
	return &Notifier{
		ctx:      ctx,
		cancel:   cancel,
		renderer: NewRenderer(),
		sender:   cfg.Sender,
		logger:   cfg.Logger,
		jobs:     make(chan Message, queueSize),
	}
}

// Start launches the delivery goroutine.
func (n *Notifier) Start() {
	n.wg.Add(1)
	go n.run()
}

// Stop drains nothing: it cancels the worker and waits for the in-flight
// send to finish. Queued messages are dropped, matching best-effort delivery.
func (n *Notifier) Stop() {
	n.cancel()
	n.wg.Wait()
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for {
		select {
		case <-n.ctx.Done():
			return
		case msg := <-n.jobs:
			if n.sender == nil {
				n.logger.WithField("to", msg.To).Debug("mail sending disabled, dropping message")
				continue
			}
			if err := n.sender.Send(msg); err != nil {
				n.logger.WithError(err).WithFields(logrus.Fields{
					"to":      msg.To,
					"subject": msg.Subject,
				}).Error("email delivery failed")
			}
		}
	}
}

// Dispatch renders the customer confirmation and admin alert for a stored
// request and enqueues both. It returns true only if both messages were
// accepted by the queue; delivery itself stays best-effort and is never
// reflected in the submission response.
func (n *Notifier) Dispatch(req *model.UnlockRequest, siteName, adminEmail, txHash, walletAddress string) bool {
	data := BuildEmailData(siteName, req, txHash, walletAddress)

	customerBody, err := n.renderer.CustomerConfirmation(data)
	if err != nil {
		n.logger.WithError(err).Error("failed to render customer confirmation")
		return false
	}
	adminBody, err := n.renderer.AdminAlert(data)
	if err != nil {
		n.logger.WithError(err).Error("failed to render admin alert")
		return false
	}

	customerOK := n.enqueue(Message{
		To:       req.Email,
		Subject:  CustomerSubject(data),
		HTMLBody: customerBody,
	})
	adminOK := n.enqueue(Message{
		To:       adminEmail,
		Subject:  AdminSubject(data),
		HTMLBody: adminBody,
	})

	return customerOK && adminOK
}

func (n *Notifier) enqueue(msg Message) bool {
	select {
	case n.jobs <- msg:
		return true
	default:
		n.logger.WithField("to", msg.To).Warn("notification queue full, dropping message")
		return false
	}
}
