package i18n

var messagesSW = map[string]string{
	"error.bad_request":             "Vigezo vya ombi si sahihi",
	"error.unauthorized":            "Tafadhali ingia kwanza",
	"error.forbidden":               "Huna ruhusa ya kufanya kitendo hiki",
	"error.not_found":               "Rasilimali haikupatikana",
	"error.too_many_requests":       "Maombi mengi mno, jaribu tena baadaye",
	"error.internal":                "Hitilafu ya seva",
	"error.login_invalid":           "Barua pepe au nenosiri si sahihi",
	"error.email_not_allowed":       "Barua pepe hii hairuhusiwi kuingia eneo la usimamizi",
	"error.category_in_use":         "Huwezi kufuta kundi lenye bidhaa",
	"error.product_not_found":       "Bidhaa haikupatikana",
	"error.product_out_of_stock":    "Bidhaa hii imeisha",
	"error.cart_empty":              "Kikapu chako cha maulizo ni tupu",
	"error.cart_busy":               "Kikapu chako kinasasishwa, tafadhali jaribu tena",
	"error.checkout_failed":         "Imeshindwa kutuma ulizo, jaribu tena",
	"error.captcha_required":        "Tafadhali kamilisha captcha",
	"error.captcha_invalid":         "Captcha si sahihi",
	"error.contact_not_found":       "Ujumbe haukupatikana",
	"error.enquiry_not_found":       "Ulizo halikupatikana",
	"error.post_not_found":          "Makala haikupatikana",
	"error.category_not_found":      "Kundi halikupatikana",
	"error.upload_failed":           "Kupakia kumeshindwa",
	"email.enquiry_notify.subject":  "Ulizo jipya #%d",
	"error.login_too_many":          "Majaribio mengi ya kuingia, jaribu tena baada ya sekunde %d",
	"error.rate_limited":            "Maombi mengi mno, jaribu tena baada ya sekunde %d",
	"error.email_invalid":           "Barua pepe si sahihi",
	"error.contact_fields_required": "Jina, barua pepe, mada na ujumbe vinahitajika",
	"error.contact_submit_failed":   "Imeshindwa kutuma ujumbe wako, jaribu tena",
	"error.cart_update_failed":      "Imeshindwa kusasisha kikapu cha maulizo",
	"error.search_failed":           "Utafutaji umeshindwa, jaribu tena",
	"error.product_fetch_failed":    "Imeshindwa kupakia bidhaa",
	"error.category_fetch_failed":   "Imeshindwa kupakia makundi",
	"error.post_fetch_failed":       "Imeshindwa kupakia makala",
	"error.captcha_verify_failed":   "Imeshindwa kuthibitisha captcha",
	"error.config_fetch_failed":     "Imeshindwa kupakia mipangilio ya duka",
}
