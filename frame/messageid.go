package frame

import "strconv"

// The data-IDs assigned by the OpenTherm specification. Only a handful are
// exercised by this controller's application dispatcher; the rest of the
// table exists because a reader decoding a captured frame needs the name,
// not because this module acts on the value.
const (
	MsgStatus                ID = 0
	MsgTSet                  ID = 1
	MsgMasterConfig          ID = 2
	MsgSlaveConfig           ID = 3
	MsgRemoteRequest         ID = 4
	MsgASFFlags              ID = 5
	MsgRBPFlags              ID = 6
	MsgCoolingControl        ID = 7
	MsgTSetCH2               ID = 8
	MsgTROverride            ID = 9
	MsgTSP                   ID = 10
	MsgTSPIndexValue         ID = 11
	MsgFHBSize               ID = 12
	MsgFHBIndexValue         ID = 13
	MsgMaxRelModLevelSetting ID = 14
	MsgMaxCapacityMinModLvl  ID = 15
	MsgTRSet                 ID = 16
	MsgRelModLevel           ID = 17
	MsgCHPressure            ID = 18
	MsgDHWFlowRate           ID = 19
	MsgDayTime               ID = 20
	MsgDate                  ID = 21
	MsgYear                  ID = 22
	MsgTRSetCH2              ID = 23
	MsgTR                    ID = 24
	MsgTBoiler               ID = 25
	MsgTDHW                  ID = 26
	MsgTOutside              ID = 27
	MsgTRet                  ID = 28
	MsgTStorage              ID = 29
	MsgTCollector            ID = 30
	MsgTFlowCH2              ID = 31
	MsgTDHW2                 ID = 32
	MsgTExhaust              ID = 33
	MsgTBoilerHeatExchanger  ID = 34
	MsgBoilerFanSpeed        ID = 35
	MsgFlameCurrent          ID = 36
	MsgTRCH2                 ID = 37
	MsgRelativeHumidity      ID = 38
	MsgTROverride2           ID = 39
	MsgTDHWSetBounds         ID = 48
	MsgMaxTSetBounds         ID = 49
	MsgTDHWSet               ID = 56
	MsgMaxTSet               ID = 57
	MsgStatusVH              ID = 70
	MsgVSet                  ID = 71
	MsgASFFlagsVH            ID = 72
	MsgOEMDiagnosticCodeVH   ID = 73
	MsgSlaveConfigVH         ID = 74
	MsgOpenThermVersionVH    ID = 75
	MsgVersionVH             ID = 76
	MsgRelVentLevel          ID = 77
	MsgRHExhaust             ID = 78
	MsgCO2Exhaust            ID = 79
	MsgTSI                   ID = 80
	MsgTSO                   ID = 81
	MsgTEI                   ID = 82
	MsgTEO                   ID = 83
	MsgRPMExhaust            ID = 84
	MsgRPMSupply             ID = 85
	MsgRBPFlagsVH            ID = 86
	MsgNominalVentilation    ID = 87
	MsgTSPVH                 ID = 88
	MsgTSPIndexValueVH       ID = 89
	MsgFHBSizeVH             ID = 90
	MsgFHBIndexValueVH       ID = 91
	MsgBrand                 ID = 93
	MsgBrandVersion          ID = 94
	MsgBrandSerialNumber     ID = 95
	MsgCoolingOperationHours ID = 96
	MsgPowerCycles           ID = 97
	MsgRFSensorStatus        ID = 98
	MsgRemoteOverrideMode    ID = 99
	MsgRemoteOverrideFunc    ID = 100
	MsgStatusSolar           ID = 101
	MsgASFFlagsSolar         ID = 102
	MsgSlaveConfigSolar      ID = 103
	MsgSolarStorageVersion   ID = 104
	MsgTSPSolar              ID = 105
	MsgTSPIndexValueSolar    ID = 106
	MsgFHBSizeSolar          ID = 107
	MsgFHBIndexValueSolar    ID = 108
	MsgElecProducerStarts    ID = 109
	MsgElecProducerHours     ID = 110
	MsgElecProduction        ID = 111
	MsgCumulativeElecProd    ID = 112
	MsgUnsuccessfulBurner    ID = 113
	MsgFlameSignalTooLow     ID = 114
	MsgOEMDiagnosticCode     ID = 115
	MsgSuccessfulBurner      ID = 116
	MsgCHPumpStarts          ID = 117
	MsgDHWPumpValveStarts    ID = 118
	MsgDHWBurnerStarts       ID = 119
	MsgBurnerOperationHours  ID = 120
	MsgCHPumpOperationHours  ID = 121
	MsgDHWPumpOperationHours ID = 122
	MsgDHWBurnerOperHours    ID = 123
	MsgOpenThermVersionMastr ID = 124
	MsgOpenThermVersionSlave ID = 125
	MsgMasterVersion         ID = 126
	MsgSlaveVersion          ID = 127
)

var messageIDNames = map[ID]string{
	MsgStatus:                "STATUS",
	MsgTSet:                  "T_SET",
	MsgMasterConfig:          "M_CONFIG",
	MsgSlaveConfig:           "S_CONFIG",
	MsgRemoteRequest:         "REMOTE_REQUEST",
	MsgASFFlags:              "ASF_FLAGS",
	MsgRBPFlags:              "RBP_FLAGS",
	MsgCoolingControl:        "COOLING_CONTROL",
	MsgTSetCH2:               "T_SET_CH2",
	MsgTROverride:            "TR_OVERRIDE",
	MsgTSP:                   "TSP",
	MsgTSPIndexValue:         "TSP_INDEX_TSP_VALUE",
	MsgFHBSize:               "FHB_SIZE",
	MsgFHBIndexValue:         "FHB_INDEX_FHB_VALUE",
	MsgMaxRelModLevelSetting: "MAX_REL_MOD_LEVEL_SETTING",
	MsgMaxCapacityMinModLvl:  "MAX_CAPACITY_MIN_MOD_LEVEL",
	MsgTRSet:                 "TR_SET",
	MsgRelModLevel:           "REL_MOD_LEVEL",
	MsgCHPressure:            "CH_PRESSURE",
	MsgDHWFlowRate:           "DHW_FLOW_RATE",
	MsgDayTime:               "DAY_TIME",
	MsgDate:                  "DATE",
	MsgYear:                  "YEAR",
	MsgTRSetCH2:              "TR_SET_CH2",
	MsgTR:                    "TR",
	MsgTBoiler:               "TBOILER",
	MsgTDHW:                  "TDHW",
	MsgTOutside:              "TOUTSIDE",
	MsgTRet:                  "TRET",
	MsgTStorage:              "TSTORAGE",
	MsgTCollector:            "TCOLLECTOR",
	MsgTFlowCH2:              "TFLOW_CH2",
	MsgTDHW2:                 "TDHW2",
	MsgTExhaust:              "TEXHAUST",
	MsgTBoilerHeatExchanger:  "TBOILER_HEAT_EXCHANGER",
	MsgBoilerFanSpeed:        "BOILER_FAN_SPEED_SETPOINT_AND_ACTUAL",
	MsgFlameCurrent:          "FLAME_CURRENT",
	MsgTRCH2:                 "TR_CH2",
	MsgRelativeHumidity:      "RELATIVE_HUMIDITY",
	MsgTROverride2:           "TR_OVERRIDE2",
	MsgTDHWSetBounds:         "TDHW_SET_UB_LB",
	MsgMaxTSetBounds:         "MAX_TSET_UB_LB",
	MsgTDHWSet:               "TDHW_SET",
	MsgMaxTSet:               "MAX_TSET",
	MsgStatusVH:              "STATUS_VH",
	MsgVSet:                  "VSET",
	MsgASFFlagsVH:            "ASF_FLAGS_VH",
	MsgOEMDiagnosticCodeVH:   "OEM_DIAGNOSTIC_CODE_VH",
	MsgSlaveConfigVH:         "S_CONFIG_VH",
	MsgOpenThermVersionVH:    "OPENTHERM_VERSION_VH",
	MsgVersionVH:             "VERSION_VH",
	MsgRelVentLevel:          "REL_VENT_LEVEL",
	MsgRHExhaust:             "RH_EXHAUST",
	MsgCO2Exhaust:            "CO2_EXHAUST",
	MsgTSI:                   "TSI",
	MsgTSO:                   "TSO",
	MsgTEI:                   "TEI",
	MsgTEO:                   "TEO",
	MsgRPMExhaust:            "RPM_EXHAUST",
	MsgRPMSupply:             "RPM_SUPPLY",
	MsgRBPFlagsVH:            "RBP_FLAGS_VH",
	MsgNominalVentilation:    "NOMINAL_VENTILATION_VALUE",
	MsgTSPVH:                 "TSP_VH",
	MsgTSPIndexValueVH:       "TSP_INDEX_TSP_VALUE_VH",
	MsgFHBSizeVH:             "FHB_SIZE_VH",
	MsgFHBIndexValueVH:       "FHB_INDEX_FHB_VALUE_VH",
	MsgBrand:                 "BRAND",
	MsgBrandVersion:          "BRAND_VERSION",
	MsgBrandSerialNumber:     "BRAND_SERIAL_NUMBER",
	MsgCoolingOperationHours: "COOLING_OPERATION_HOURS",
	MsgPowerCycles:           "POWER_CYCLES",
	MsgRFSensorStatus:        "RF_SENSOR_STATUS_INFORMATION",
	MsgRemoteOverrideMode:    "REMOTE_OVERRIDE_OPERATING_MODE_HEATING_DHW",
	MsgRemoteOverrideFunc:    "REMOTE_OVERRIDE_FUNCTION",
	MsgStatusSolar:           "STATUS_SOLAR_STORAGE",
	MsgASFFlagsSolar:         "ASF_FLAGS_SOLAR_STORAGE",
	MsgSlaveConfigSolar:      "S_CONFIG_SOLAR_STORAGE",
	MsgSolarStorageVersion:   "SOLAR_STORAGE_VERSION",
	MsgTSPSolar:              "TSP_SOLAR_STORAGE",
	MsgTSPIndexValueSolar:    "TSP_INDEX_TSP_VALUE_SOLAR_STORAGE",
	MsgFHBSizeSolar:          "FHB_SIZE_SOLAR_STORAGE",
	MsgFHBIndexValueSolar:    "FHB_INDEX_FHB_VALUE_SOLAR_STORAGE",
	MsgElecProducerStarts:    "ELECTRICITY_PRODUCER_STARTS",
	MsgElecProducerHours:     "ELECTRICITY_PRODUCER_HOURS",
	MsgElecProduction:        "ELECTRICITY_PRODUCTION",
	MsgCumulativeElecProd:    "CUMULATIVE_ELECTRICITY_PRODUCTION",
	MsgUnsuccessfulBurner:    "UNSUCCESSFUL_BURNER_STARTS",
	MsgFlameSignalTooLow:     "FLAME_SIGNAL_TOO_LOW_NUMBER",
	MsgOEMDiagnosticCode:     "OEM_DIAGNOSTIC_CODE",
	MsgSuccessfulBurner:      "SUCCESSFUL_BURNER_STARTS",
	MsgCHPumpStarts:          "CH_PUMP_STARTS",
	MsgDHWPumpValveStarts:    "DHW_PUMP_VALVE_STARTS",
	MsgDHWBurnerStarts:       "DHW_BURNER_STARTS",
	MsgBurnerOperationHours:  "BURNER_OPERATION_HOURS",
	MsgCHPumpOperationHours:  "CH_PUMP_OPERATION_HOURS",
	MsgDHWPumpOperationHours: "DHW_PUMP_VALVE_OPERATION_HOURS",
	MsgDHWBurnerOperHours:    "DHW_BURNER_OPERATION_HOURS",
	MsgOpenThermVersionMastr: "OPENTHERM_VERSION_MASTER",
	MsgOpenThermVersionSlave: "OPENTHERM_VERSION_SLAVE",
	MsgMasterVersion:         "MASTER_VERSION",
	MsgSlaveVersion:          "SLAVE_VERSION",
}

// String returns the OpenTherm data-ID's mnemonic name, or a numeric
// fallback for an ID this table doesn't name.
func (id ID) String() string {
	if name, ok := messageIDNames[id]; ok {
		return name
	}
	return "ID_" + strconv.Itoa(int(id))
}
