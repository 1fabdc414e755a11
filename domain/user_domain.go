package domain

import (
	"errors"
)

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login success"
	MessageSuccessGetMe            = "success get profile"
	MessageSuccessGetUser          = "success get user"
	MessageSuccessGetUsers         = "success get users"
	MessageSuccessUpdateUser       = "user updated successfully"
	MessageSuccessSetPassword      = "password changed successfully"
	MessageSuccessForgotPassword   = "password reset email sent"
	MessageSuccessResetPassword    = "password reset successfully"
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedRegister         = "failed to register user"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetUser          = "failed to get user"
	MessageFailedUpdateUser       = "failed to update user"
	MessageFailedSetPassword      = "failed to change password"
	MessageFailedForgotPassword   = "failed to send password reset email"
	MessageFailedResetPassword    = "failed to reset password"
	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrUsernameAlreadyUsed  = errors.New("username already taken")
	ErrCredentialsInvalid   = errors.New("invalid email or password")
	ErrPasswordIncorrect    = errors.New("current password is incorrect")
	ErrSelfSubscription     = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed    = errors.New("subscription already exists")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type (
	RegisterRequest struct {
		Username  string `json:"username" validate:"required,min=3,max=150"`
		Email     string `json:"email" validate:"required,email,max=254"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"auth_token"`
		User  UserResponse `json:"user"`
	}

	UpdateUserRequest struct {
		Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=150"`
		FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
		LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	UserResponse struct {
		ID           string `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	// SubscriptionResponse is an author profile expanded with that
	// author's recipes (optionally truncated) and recipe count.
	SubscriptionResponse struct {
		UserResponse
		Recipes      []ShortRecipeResponse `json:"recipes"`
		RecipesCount int64                 `json:"recipes_count"`
	}
)
