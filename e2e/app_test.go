package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a test suite for end-to-end tests
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	browser, err := pw.Chromium.Launch()
	require.NoError(suite.T(), err, "could not launch chromium")
	suite.browser = browser

	suite.expect = playwright.NewPlaywrightAssertions()
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.browser != nil {
		suite.browser.Close()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

// SetupTest runs before each test
func (suite *E2ETestSuite) SetupTest() {
	page, err := suite.browser.NewPage()
	require.NoError(suite.T(), err, "could not create page")
	suite.page = page

	_, err = suite.page.Goto(appURL)
	require.NoError(suite.T(), err, "could not navigate to app")
}

// TearDownTest runs after each test
func (suite *E2ETestSuite) TearDownTest() {
	if suite.page != nil {
		suite.page.Close()
	}
}

func (suite *E2ETestSuite) login() {
	// Without a session every page lands on the login form
	err := suite.expect.Locator(suite.page.Locator(".auth-card form")).ToBeVisible()
	require.NoError(suite.T(), err, "login form not visible")

	// Fill in credentials
	err = suite.page.Locator("input[name=username]").Fill("testuser")
	require.NoError(suite.T(), err, "failed to fill username")

	err = suite.page.Locator("input[name=password]").Fill("testpass123")
	require.NoError(suite.T(), err, "failed to fill password")

	// Submit login
	err = suite.page.Locator(".auth-card button[type=submit]").Click()
	require.NoError(suite.T(), err, "failed to click login")

	// Wait for redirect to the dashboard
	err = suite.expect.Locator(suite.page.Locator(".totals")).ToBeVisible()
	require.NoError(suite.T(), err, "did not redirect to dashboard after login")
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	// Login
	suite.login()

	// Verify dashboard
	err := suite.expect.Locator(suite.page.Locator(".total-label").First()).ToHaveText("Gastos totales")
	require.NoError(suite.T(), err, "dashboard assertion failed")

	// A category must exist before any expense can be booked
	_, err = suite.page.Goto(appURL + "/categorias/agregar")
	require.NoError(suite.T(), err, "could not open category form")

	err = suite.page.Locator("input[name=nombre]").Fill("Comida")
	require.NoError(suite.T(), err, "failed to fill category name")

	err = suite.page.Locator(".entity-form button[type=submit]").Click()
	require.NoError(suite.T(), err, "failed to submit category")

	err = suite.expect.Locator(suite.page.Locator(".flash")).ToContainText("Categoría agregada")
	require.NoError(suite.T(), err, "category flash not shown")

	// Create an expense
	_, err = suite.page.Goto(appURL + "/gastos/agregar")
	require.NoError(suite.T(), err, "could not open expense form")

	err = suite.page.Locator("input[name=fecha]").Fill("2024-05-01")
	require.NoError(suite.T(), err, "failed to fill date")

	err = suite.page.Locator("input[name=importe]").Fill("12.50")
	require.NoError(suite.T(), err, "failed to fill amount")

	err = suite.page.Locator("input[name=concepto]").Fill("Almuerzo")
	require.NoError(suite.T(), err, "failed to fill concept")

	_, err = suite.page.Locator("select[name=categoria]").SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{"Comida"},
	})
	require.NoError(suite.T(), err, "failed to select category")

	err = suite.page.Locator(".entity-form button[type=submit]").Click()
	require.NoError(suite.T(), err, "failed to submit expense")

	// Verify in the expense list
	err = suite.expect.Locator(suite.page.Locator(".flash")).ToContainText("Gasto agregado")
	require.NoError(suite.T(), err, "expense flash not shown")

	row := suite.page.Locator("tbody tr").First()
	err = suite.expect.Locator(row).ToContainText("Almuerzo")
	require.NoError(suite.T(), err, "concept mismatch")

	err = suite.expect.Locator(row).ToContainText("12.5")
	require.NoError(suite.T(), err, "amount mismatch")

	// The dashboard picks the expense up in the all-time total
	_, err = suite.page.Goto(appURL)
	require.NoError(suite.T(), err, "could not navigate back to dashboard")

	err = suite.expect.Locator(suite.page.Locator(".total-value").First()).ToContainText("12.5")
	require.NoError(suite.T(), err, "dashboard total mismatch")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
