package onec

import "strings"

// phoneTailLen длина "значимого хвоста" номера: последние 10 цифр.
// Сравнение по хвосту игнорирует различия кода страны (+7 / 8 / 7),
// ценой возможных ложных совпадений на коротких номерах.
const phoneTailLen = 10

// NormalizePhone оставляет в номере только цифры
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneTail возвращает последние n символов строки цифр,
// либо всю строку, если она короче
func PhoneTail(digits string, n int) string {
	if len(digits) <= n {
		return digits
	}
	return digits[len(digits)-n:]
}

// PhoneMatches сравнивает два номера по значимому хвосту.
// Оба номера нормализуются, пустой хвост никогда не совпадает.
func PhoneMatches(a, b string) bool {
	tailA := PhoneTail(NormalizePhone(a), phoneTailLen)
	tailB := PhoneTail(NormalizePhone(b), phoneTailLen)
	if tailA == "" || tailB == "" {
		return false
	}
	return tailA == tailB
}
