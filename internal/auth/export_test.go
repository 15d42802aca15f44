package auth

import "golang.org/x/crypto/bcrypt"

func (a *StaticAuthenticator) DummyCost() int {
	c, _ := bcrypt.Cost(a.dummy)
	return c
}
