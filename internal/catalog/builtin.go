package catalog

import "stock-predictor/internal/types"

type builtin struct {
	name        string
	market      types.Market
	description string
	list        []types.Security
}

// builtins work offline and are never cached.
var builtins = []builtin{
	{"nifty50", types.MarketIndia, "Nifty 50 large caps", nifty50},
	{"midcap", types.MarketIndia, "NSE mid caps", nseMidcap},
	{"us-large-cap", types.MarketUS, "US mega and large caps", usLargeCap},
}

var nifty50 = []types.Security{
	{Name: "Adani Enterprises", Ticker: "ADANIENT.NS"},
	{Name: "Adani Ports", Ticker: "ADANIPORTS.NS"},
	{Name: "Apollo Hospitals", Ticker: "APOLLOHOSP.NS"},
	{Name: "Asian Paints", Ticker: "ASIANPAINT.NS"},
	{Name: "Axis Bank", Ticker: "AXISBANK.NS"},
	{Name: "Bajaj Auto", Ticker: "BAJAJ-AUTO.NS"},
	{Name: "Bajaj Finance", Ticker: "BAJFINANCE.NS"},
	{Name: "Bajaj Finserv", Ticker: "BAJAJFINSV.NS"},
	{Name: "BPCL", Ticker: "BPCL.NS"},
	{Name: "Bharti Airtel", Ticker: "BHARTIARTL.NS"},
	{Name: "Britannia", Ticker: "BRITANNIA.NS"},
	{Name: "Cipla", Ticker: "CIPLA.NS"},
	{Name: "Coal India", Ticker: "COALINDIA.NS"},
	{Name: "Divi's Laboratories", Ticker: "DIVISLAB.NS"},
	{Name: "Dr Reddy's", Ticker: "DRREDDY.NS"},
	{Name: "Eicher Motors", Ticker: "EICHERMOT.NS"},
	{Name: "Grasim", Ticker: "GRASIM.NS"},
	{Name: "HCL Technologies", Ticker: "HCLTECH.NS"},
	{Name: "HDFC Bank", Ticker: "HDFCBANK.NS"},
	{Name: "HDFC Life", Ticker: "HDFCLIFE.NS"},
	{Name: "Hero MotoCorp", Ticker: "HEROMOTOCO.NS"},
	{Name: "Hindalco", Ticker: "HINDALCO.NS"},
	{Name: "Hindustan Unilever", Ticker: "HINDUNILVR.NS"},
	{Name: "ICICI Bank", Ticker: "ICICIBANK.NS"},
	{Name: "ITC", Ticker: "ITC.NS"},
	{Name: "IndusInd Bank", Ticker: "INDUSINDBK.NS"},
	{Name: "Infosys", Ticker: "INFY.NS"},
	{Name: "JSW Steel", Ticker: "JSWSTEEL.NS"},
	{Name: "Kotak Mahindra Bank", Ticker: "KOTAKBANK.NS"},
	{Name: "Larsen & Toubro", Ticker: "LT.NS"},
	{Name: "LTIMindtree", Ticker: "LTIM.NS"},
	{Name: "Mahindra & Mahindra", Ticker: "M&M.NS"},
	{Name: "Maruti Suzuki", Ticker: "MARUTI.NS"},
	{Name: "NTPC", Ticker: "NTPC.NS"},
	{Name: "Nestle India", Ticker: "NESTLEIND.NS"},
	{Name: "ONGC", Ticker: "ONGC.NS"},
	{Name: "Power Grid", Ticker: "POWERGRID.NS"},
	{Name: "Reliance Industries", Ticker: "RELIANCE.NS"},
	{Name: "SBI Life", Ticker: "SBILIFE.NS"},
	{Name: "State Bank of India", Ticker: "SBIN.NS"},
	{Name: "Shriram Finance", Ticker: "SHRIRAMFIN.NS"},
	{Name: "Sun Pharma", Ticker: "SUNPHARMA.NS"},
	{Name: "TCS", Ticker: "TCS.NS"},
	{Name: "Tata Consumer", Ticker: "TATACONSUM.NS"},
	{Name: "Tata Motors", Ticker: "TATAMOTORS.NS"},
	{Name: "Tata Steel", Ticker: "TATASTEEL.NS"},
	{Name: "Tech Mahindra", Ticker: "TECHM.NS"},
	{Name: "Titan", Ticker: "TITAN.NS"},
	{Name: "UltraTech Cement", Ticker: "ULTRACEMCO.NS"},
	{Name: "Wipro", Ticker: "WIPRO.NS"},
}

var nseMidcap = []types.Security{
	{Name: "Aarti Industries", Ticker: "AARTIIND.NS"},
	{Name: "ABB India", Ticker: "ABB.NS"},
	{Name: "ACC", Ticker: "ACC.NS"},
	{Name: "Alkem Laboratories", Ticker: "ALKEM.NS"},
	{Name: "Astral", Ticker: "ASTRAL.NS"},
	{Name: "AU Small Finance Bank", Ticker: "AUBANK.NS"},
	{Name: "Balkrishna Industries", Ticker: "BALKRISIND.NS"},
	{Name: "Bandhan Bank", Ticker: "BANDHANBNK.NS"},
	{Name: "Bata India", Ticker: "BATAINDIA.NS"},
	{Name: "BEL", Ticker: "BEL.NS"},
	{Name: "Bharat Forge", Ticker: "BHARATFORG.NS"},
	{Name: "Coforge", Ticker: "COFORGE.NS"},
	{Name: "Cummins India", Ticker: "CUMMINSIND.NS"},
	{Name: "Dixon Technologies", Ticker: "DIXON.NS"},
	{Name: "Federal Bank", Ticker: "FEDERALBNK.NS"},
	{Name: "Godrej Properties", Ticker: "GODREJPROP.NS"},
	{Name: "Indian Hotels", Ticker: "INDHOTEL.NS"},
	{Name: "Lupin", Ticker: "LUPIN.NS"},
	{Name: "Max Healthcare", Ticker: "MAXHEALTH.NS"},
	{Name: "Mphasis", Ticker: "MPHASIS.NS"},
	{Name: "Persistent Systems", Ticker: "PERSISTENT.NS"},
	{Name: "Polycab", Ticker: "POLYCAB.NS"},
	{Name: "Tata Power", Ticker: "TATAPOWER.NS"},
	{Name: "Torrent Pharma", Ticker: "TORNTPHARM.NS"},
	{Name: "TVS Motor", Ticker: "TVSMOTOR.NS"},
	{Name: "Voltas", Ticker: "VOLTAS.NS"},
}

var usLargeCap = []types.Security{
	{Name: "Apple", Ticker: "AAPL"},
	{Name: "Microsoft", Ticker: "MSFT"},
	{Name: "NVIDIA", Ticker: "NVDA"},
	{Name: "Amazon", Ticker: "AMZN"},
	{Name: "Alphabet", Ticker: "GOOGL"},
	{Name: "Meta Platforms", Ticker: "META"},
	{Name: "Berkshire Hathaway", Ticker: "BRK-B"},
	{Name: "JPMorgan Chase", Ticker: "JPM"},
	{Name: "Visa", Ticker: "V"},
	{Name: "Johnson & Johnson", Ticker: "JNJ"},
	{Name: "Exxon Mobil", Ticker: "XOM"},
	{Name: "Walmart", Ticker: "WMT"},
	{Name: "Procter & Gamble", Ticker: "PG"},
	{Name: "Mastercard", Ticker: "MA"},
	{Name: "UnitedHealth", Ticker: "UNH"},
	{Name: "Home Depot", Ticker: "HD"},
	{Name: "Coca-Cola", Ticker: "KO"},
	{Name: "PepsiCo", Ticker: "PEP"},
	{Name: "Costco", Ticker: "COST"},
	{Name: "Walt Disney", Ticker: "DIS"},
}
