package booking

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"rezerv/apperr"
	"rezerv/middleware"
	"rezerv/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func receiptSecret() []byte {
	if s := os.Getenv("RECEIPT_HMAC_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("your-very-secret-key")
}

// receiptPayload returns a signed payload string the owner can scan to
// verify a reservation at the door: reservationID|resourceID|timestamp|signature
func receiptPayload(reservationID, resourceID string) string {
	data := fmt.Sprintf("%s|%s|%d", reservationID, resourceID, time.Now().Unix())

	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/bookings/:id/receipt
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	resv, err := Default.store.Reservation(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}
	res, err := Default.store.Resource(ctx, resv.ResourceID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), err.Error())
		return
	}

	caller := middleware.RequesterID(r)
	if caller != resv.RequesterID && caller != res.OwnerID {
		utils.RespondWithError(w, http.StatusForbidden, "not a party to this reservation")
		return
	}

	qrPNG, err := qrcode.Encode(receiptPayload(resv.ID, res.ResourceID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Resource: %s", res.Title))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Reservation: %s", resv.ID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("From: %s", resv.SlotStart.Format(time.RFC1123)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("To: %s", resv.SlotEnd.Format(time.RFC1123)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", resv.Status))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+resv.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
