package utils

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// BuildOrphanReport composes the mail sent to operators when best-effort
// image deletes fail and blobs may be left behind in the bucket.
func BuildOrphanReport(sender string, recipient string, productID string, blobIDs []string) *gomail.Message {
	message := gomail.NewMessage()
	message.SetHeader("From", sender)
	message.SetHeader("To", recipient)
	message.SetHeader("Subject", fmt.Sprintf("Orphaned catalog images for product %s", productID))
	message.SetBody("text/plain", fmt.Sprintf(
		"The following image blobs could not be deleted while removing product %s and may need manual cleanup:\n\n%s\n",
		productID, strings.Join(blobIDs, "\n")))

	return message
}

func SendEmail(message *gomail.Message, sender string, password string, smtpServer string, smtpPort int) error {
	// Create a new SMTP client to send the email
	d := gomail.NewDialer(smtpServer, smtpPort, sender, password)

	// Send the email
	if err := d.DialAndSend(message); err != nil {
		return err
	}

	return nil
}
