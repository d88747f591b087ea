package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ReceiptData feeds the release receipt email.
type ReceiptData struct {
	Code          string
	LotName       string
	SpotNumber    int
	VehicleNumber string
	ParkedAt      string
	LeftAt        string
	Hours         string
	PricePerHour  float64
	TotalCost     float64
}

const receiptTemplate = `
<h2>Parking receipt {{.Code}}</h2>
<p>Lot: {{.LotName}}, spot {{.SpotNumber}}</p>
<p>Vehicle: {{.VehicleNumber}}</p>
<p>Parked: {{.ParkedAt}} &mdash; Left: {{.LeftAt}} ({{.Hours}} h)</p>
<p>Rate: {{.PricePerHour}}/h</p>
<p><strong>Total: {{.TotalCost}}</strong></p>
`

// SendReceiptEmail mails a release receipt (async, best effort).
func SendReceiptEmail(to string, data ReceiptData) {
	go func() {
		tmpl, err := template.New("receipt").Parse(receiptTemplate)
		if err != nil {
			log.Printf("failed to parse receipt template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render receipt email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		if host == "" {
			return
		}
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Parking receipt #"+data.Code)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send receipt email: %v", err)
		}
	}()
}
