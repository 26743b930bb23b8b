package email

import "estatehub_backend/internal/logger"

type job struct {
	to       []string
	subject  string
	template string
	data     TemplateData
}

// Dispatcher queues mail for background delivery. Sending never blocks a
// request; when the queue is full the message is dropped and logged.
type Dispatcher struct {
	sender Sender
	queue  chan job
	done   chan struct{}
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan job, 100),
		done:   make(chan struct{}),
	}
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for j := range d.queue {
		if err := d.sender.SendTemplate(j.to, j.subject, j.template, j.data); err != nil {
			logger.Error("email delivery failed", "template", j.template, "error", err)
		}
	}
}

// Dispatch enqueues a templated message for delivery.
func (d *Dispatcher) Dispatch(to []string, subject, templateName string, data TemplateData) {
	select {
	case d.queue <- job{to: to, subject: subject, template: templateName, data: data}:
	default:
		logger.Warn("email queue full, dropping message", "template", templateName)
	}
}

// Close drains the queue and waits for the worker to finish.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
