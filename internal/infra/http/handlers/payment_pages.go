package handlers

import "net/http"

const paymentSuccessPage = `<html>
    <body style="font-family: Arial; text-align: center; padding: 50px;">
        <h1>Payment Successful!</h1>
        <p>Thank you for your payment. You will receive a confirmation email shortly.</p>
    </body>
</html>`

const paymentCancelledPage = `<html>
    <body style="font-family: Arial; text-align: center; padding: 50px;">
        <h1>Payment Cancelled</h1>
        <p>Your payment was cancelled. No charges were made.</p>
    </body>
</html>`

// Páginas de retorno do checkout. Um front de verdade substitui isso.
func PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, paymentSuccessPage)
}

func PaymentCancelled(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, paymentCancelledPage)
}

func writeHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}
