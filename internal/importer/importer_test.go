package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/MaxiAdad31/gastos/internal/models"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

type ImporterTestSuite struct {
	suite.Suite
	db       *storage.DB
	importer *Importer
	category *models.Category
	user     *models.User
	card     *models.Card
}

func (suite *ImporterTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.importer = New(db)

	suite.category, err = db.CreateCategory("Comida")
	require.NoError(suite.T(), err)
	suite.user, err = db.RegisterUser("maxi", "secret123")
	require.NoError(suite.T(), err)
	suite.card = &models.Card{Name: "Visa", Bank: "Galicia"}
	require.NoError(suite.T(), db.CreateCard(suite.card))
}

func (suite *ImporterTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *ImporterTestSuite) writeFile(content string) string {
	suite.T().Helper()
	path := filepath.Join(suite.T().TempDir(), "import.csv")
	require.NoError(suite.T(), os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (suite *ImporterTestSuite) TestImportExpenses() {
	t := suite.T()
	path := suite.writeFile(
		"fecha,importe,concepto,categoria_id,detalle\n" +
			"2024-05-01,100.50,Supermercado,1,\n" +
			"2024-05-02,20.00,Panadería,1,factura 9\n")

	n, err := suite.importer.ImportFile(path, KindExpenses, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expenses, err := suite.db.ListExpenses()
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Panadería", expenses[0].Concept)
	assert.Equal(t, "factura 9", expenses[0].Note)
}

func (suite *ImporterTestSuite) TestBadRowAbortsWholeFile() {
	t := suite.T()
	path := suite.writeFile(
		"fecha,importe,concepto,categoria_id,detalle\n" +
			"2024-05-01,100.50,Supermercado,1,\n" +
			"2024-05-02,no-es-numero,Panadería,1,\n" +
			"2024-05-03,30.00,Verdulería,1,\n")

	n, err := suite.importer.ImportFile(path, KindExpenses, Options{})
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "row 3")

	// Nothing is persisted, not even the rows before the bad one.
	expenses, err := suite.db.ListExpenses()
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func (suite *ImporterTestSuite) TestMissingColumn() {
	t := suite.T()
	path := suite.writeFile(
		"fecha,concepto,categoria_id\n" +
			"2024-05-01,Supermercado,1\n")

	_, err := suite.importer.ImportFile(path, KindExpenses, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
	assert.Contains(t, err.Error(), "importe")
}

func (suite *ImporterTestSuite) TestImportIncomes() {
	t := suite.T()
	path := suite.writeFile(
		"fecha,importe,concepto,detalle\n" +
			"2024-05-01,5000.00,Sueldo,\n" +
			"2024-05-10,1200.00,Changas,extra\n")

	n, err := suite.importer.ImportFile(path, KindIncomes, Options{UserID: suite.user.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	incomes, err := suite.db.ListIncomes(suite.user.ID)
	require.NoError(t, err)
	require.Len(t, incomes, 2)
	assert.Equal(t, suite.user.ID, incomes[0].UserID)
}

func (suite *ImporterTestSuite) TestIncomesRequireOwner() {
	t := suite.T()
	path := suite.writeFile("fecha,importe,concepto,detalle\n2024-05-01,100,Sueldo,\n")

	_, err := suite.importer.ImportFile(path, KindIncomes, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner user id")
}

func (suite *ImporterTestSuite) TestImportCardCharges() {
	t := suite.T()
	path := suite.writeFile(
		"fecha,concepto,monto,cuota\n" +
			"2024-05-01,Heladera,1200.00,3/12\n" +
			"2024-05-02,Nafta,50.00,\n")

	n, err := suite.importer.ImportFile(path, KindCardCharges, Options{CardID: suite.card.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	charges, err := suite.db.ListCardChargesByCard(suite.card.ID)
	require.NoError(t, err)
	require.Len(t, charges, 2)
	assert.Equal(t, "3/12", charges[1].Installment)
}

func (suite *ImporterTestSuite) TestCardChargesRequireCard() {
	t := suite.T()
	path := suite.writeFile("fecha,concepto,monto,cuota\n2024-05-01,Nafta,50.00,\n")

	_, err := suite.importer.ImportFile(path, KindCardCharges, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card id")
}

func (suite *ImporterTestSuite) TestEmptyFile() {
	t := suite.T()
	path := suite.writeFile("")

	_, err := suite.importer.ImportFile(path, KindExpenses, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func (suite *ImporterTestSuite) TestUnknownKind() {
	t := suite.T()
	path := suite.writeFile("fecha\n2024-05-01\n")

	_, err := suite.importer.ImportFile(path, Kind("otra"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown import kind")
}

func TestImporterSuite(t *testing.T) {
	suite.Run(t, new(ImporterTestSuite))
}
