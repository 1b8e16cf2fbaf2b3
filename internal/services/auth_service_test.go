package services_test

import (
	"fmt"
	"testing"
	"time"

	"topup/internal/models"
	"topup/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_RegisterCustomer(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Test successful registration
	customer := &models.Customer{
		Username: "testcustomer",
		Email:    "test@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", customer.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", customer.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil).Once()

	err := authService.RegisterCustomer(customer)
	assert.NoError(t, err)
	// The password is stored hashed and the role is always customer,
	// regardless of what the request carried.
	assert.NotEqual(t, "password123", customer.Password)
	assert.Equal(t, models.RoleCustomer, customer.Role)
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", customer.Username).Return(&models.Customer{ID: "1"}, nil).Once()
	err = authService.RegisterCustomer(customer)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username 'testcustomer' already taken")
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByUsername", customer.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", customer.Email).Return(&models.Customer{ID: "1"}, nil).Once()
	err = authService.RegisterCustomer(customer)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterCustomer_NeverGrantsAdmin(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	customer := &models.Customer{
		Username: "sneaky",
		Email:    "sneaky@example.com",
		Password: "password123",
		Role:     models.RoleAdmin,
	}

	mockRepo.On("GetByUsername", customer.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", customer.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil).Once()

	err := authService.RegisterCustomer(customer)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, customer.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginCustomer(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	customer := &models.Customer{
		ID:       "cust-123",
		Username: "testcustomer",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
	}

	// Test successful login
	mockRepo.On("GetByUsername", customer.Username).Return(customer, nil).Once()

	token, err := authService.LoginCustomer("testcustomer", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the token structure (optional, but good to check)
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, customer.ID, claims["customer_id"])
	assert.Equal(t, customer.Username, claims["username"])
	assert.Equal(t, models.RoleCustomer, claims["role"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByUsername", customer.Username).Return(customer, nil).Once()
	_, err = authService.LoginCustomer("testcustomer", "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (customer not found)
	mockRepo.On("GetByUsername", "nonexistent").Return(nil, fmt.Errorf("customer with username nonexistent not found")).Once()
	_, err = authService.LoginCustomer("nonexistent", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials") // Should return generic invalid credentials message
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"customer_id": "cust-123",
		"username":    "testcustomer",
		"role":        models.RoleCustomer,
		"exp":         jwt.TimeFunc().Add(time.Hour).Unix(), // Expires in 1 hour
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "cust-123", claims["customer_id"])
	assert.Equal(t, "testcustomer", claims["username"])

	// Test invalid token (malformed)
	invalidTokenString := "invalid.token.string"
	_, err = authService.ValidateToken(invalidTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"customer_id": "cust-123",
		"username":    "testcustomer",
		"exp":         jwt.TimeFunc().Add(-time.Hour).Unix(), // Expired 1 hour ago
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
