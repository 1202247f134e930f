// pkg/phonenumber/phonenumber.go
package phonenumber

import "regexp"

// E.164: '+' ve ardından yalnızca rakamlar. Davetli kaydedilmeden önce
// doğrulanır; desen bilinçli olarak bundan daha akıllı değildir.
var e164Pattern = regexp.MustCompile(`^\+[0-9]+$`)

// IsValidE164 numaranın E.164 biçiminde olup olmadığını döndürür.
func IsValidE164(number string) bool {
	return e164Pattern.MatchString(number)
}
